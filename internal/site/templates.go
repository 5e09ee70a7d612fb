package site

// layoutTemplate is the page chrome shared by every view.
const layoutTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="{{.Theme}}"{{if .ServerToggle}} data-theme-source="server"{{end}}>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.SiteTitle}}</title>
  <link rel="stylesheet" href="{{.AssetBase}}style.css">
  <link rel="stylesheet" href="{{.AssetBase}}highlight.css">
  {{- if not .ServerToggle}}
  <script>
    (function() {
      var t = null;
      try { t = localStorage.getItem("theme"); } catch (e) {}
      if (t !== "dark" && t !== "light") {
        t = window.matchMedia && window.matchMedia("(prefers-color-scheme: dark)").matches ? "dark" : "light";
      }
      document.documentElement.setAttribute("data-theme", t);
    })();
  </script>
  {{- end}}
</head>
<body>
  <header class="navbar">
    <nav class="nav-inner">
      <a class="nav-brand" href="{{href homeRoute}}">{{.Owner}}</a>
      <div class="nav-links">
        <a href="{{href homeRoute}}" data-nav="home"{{if eq .Active.String "home"}} class="active"{{end}}>Home</a>
        <a href="{{href notesRoute}}" data-nav="notes"{{if ne .Active.String "home"}} class="active"{{end}}>Notes</a>
        {{- if .ServerToggle}}
        <form method="post" action="/theme/toggle" class="theme-form">
          <button type="submit" class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">
            <span class="sun-icon">&#9728;</span><span class="moon-icon">&#9790;</span>
          </button>
        </form>
        {{- else}}
        <button type="button" class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">
          <span class="sun-icon">&#9728;</span><span class="moon-icon">&#9790;</span>
        </button>
        {{- end}}
      </div>
    </nav>
  </header>
  <main class="container">
    {{.Body}}
    <footer class="site-footer">
      <p>&copy; {{.Year}} {{.Owner}}. All rights reserved.</p>
    </footer>
  </main>
  <script src="{{.AssetBase}}script.js"></script>
  {{- if .Hash}}
  <script src="{{.AssetBase}}router.js"></script>
  {{- end}}
  {{- if .LiveReload}}
  <script>
    (function() {
      var proto = location.protocol === "https:" ? "wss://" : "ws://";
      var ws = new WebSocket(proto + location.host + "/ws/reload");
      ws.onmessage = function(e) { if (e.data === "reload") { location.reload(); } };
    })();
  </script>
  {{- end}}
</body>
</html>`

// homeTemplate is the CV page.
const homeTemplate = `<header class="cv-header">
  <h1>{{.Profile.Name}}{{with .Profile.OtherName}} <span class="other-name">({{.}})</span>{{end}}</h1>
  <h2 class="cv-title">{{.Profile.Title}}{{with .Profile.Institution}} | {{.}}{{end}}</h2>
  <div class="contact-bar">
    {{- with .Email}}
    <a href="mailto:{{.}}" aria-label="Email">Email</a>
    <button type="button" class="copy-email" data-email="{{.}}" aria-label="Copy email address">Copy email</button>
    {{- end}}
    {{- with .Profile.GitHub}}
    <a href="{{.}}" target="_blank" rel="noopener noreferrer" aria-label="GitHub">GitHub</a>
    {{- end}}
    {{- with .Profile.LinkedIn}}
    <a href="{{.}}" target="_blank" rel="noopener noreferrer" aria-label="LinkedIn">LinkedIn</a>
    {{- end}}
  </div>
</header>

<div class="about">
  {{- with .Profile.ImageURL}}
  <img src="{{.}}" alt="{{$.Profile.Name}} Profile" class="portrait">
  {{- end}}
  <p>{{.Profile.About}}</p>
</div>

{{- if .Profile.Research}}
<section class="cv-section">
  <h2>Preprints &amp; Publications</h2>
  {{- range .Profile.Research}}
  <article class="research-item">
    <div class="research-head">
      <h3>{{.Title}}</h3>
      <div class="research-links">
        {{- range .Links}}
        <a href="{{.URL}}" target="_blank" rel="noopener noreferrer">{{.Type}}</a>
        {{- end}}
      </div>
    </div>
    <p class="authors">{{.Authors}}{{with .Year}} ({{.}}){{end}}</p>
    {{- with .Journal}}
    <p class="journal">{{.}}</p>
    {{- end}}
    <p>{{.Summary}}</p>
  </article>
  {{- end}}
</section>
{{- end}}

{{- if .Education}}
<section class="cv-section">
  <h2>Education</h2>
  {{- range .Education}}
  <div class="education-item">
    <div class="education-head">
      <h3>{{.Degree}}</h3>
      <span class="dates">{{.Dates}}</span>
    </div>
    <p class="institution">{{.Institution}}</p>
    <div class="details">{{.DetailsHTML}}</div>
  </div>
  {{- end}}
</section>
{{- end}}

{{- if .Profile.Skills}}
<section class="cv-section">
  <h2>Technical</h2>
  <div class="skills-grid">
    {{- range .Profile.Skills}}
    <div class="skill-card">
      <h4>{{.Category}}</h4>
      <div class="chips">
        {{- range .Items}}
        <span class="chip">{{shortSkill .}}</span>
        {{- end}}
      </div>
    </div>
    {{- end}}
  </div>
</section>
{{- end}}`

// notesTemplate is the notes list.
const notesTemplate = `<div class="notes-head">
  <h1>Notes</h1>
  <form method="get" action="{{href notesRoute}}" class="notes-sort"{{if .Server}} data-server{{end}}>
    {{- with .Tag}}
    <input type="hidden" name="tag" value="{{.}}">
    {{- end}}
    <label for="notes-sort">Sort</label>
    <select id="notes-sort" name="sort">
      <option value="newest"{{if eq .Sort "newest"}} selected{{end}}>Newest first</option>
      <option value="oldest"{{if eq .Sort "oldest"}} selected{{end}}>Oldest first</option>
    </select>
  </form>
</div>
{{- if .Tag}}
<p class="tag-filter">Tagged <span class="tag">{{.Tag}}</span> <a href="{{href notesRoute}}">clear</a></p>
{{- end}}
<div class="notes-list" id="notes-list">
  {{- range .Notes}}
  <a class="note-card" href="{{href (noteRoute .ID)}}" data-sort-key="{{.SortKey}}">
    <article>
      <h3>{{.Title}}</h3>
      <div class="note-meta">
        <time {{with isoDate .Post}}datetime="{{.}}"{{end}}>{{.Date}}</time>
        {{- if .Tags}}
        <span class="sep">&bull;</span>
        {{- range .Tags}}
        <span class="tag">{{.}}</span>
        {{- end}}
        {{- end}}
      </div>
      <p class="summary">{{.Summary}}</p>
      <span class="read-more" aria-label="Read post: {{.Title}}">Read more &rarr;</span>
    </article>
  </a>
  {{- else}}
  <p class="empty">No notes yet.</p>
  {{- end}}
</div>`

// noteTemplate is one note.
const noteTemplate = `<article class="note">
  <a class="back-link" href="{{href notesRoute}}">&larr; Back to all posts</a>
  <header class="note-header">
    <h1>{{.Post.Title}}</h1>
    <div class="note-meta">
      <time {{with isoDate .Post}}datetime="{{.}}"{{end}}>Published on {{.Post.Date}}</time>
      {{- if .Post.Tags}}
      <span class="sep">&bull;</span>
      {{- range .Post.Tags}}
      <span class="tag">{{.}}</span>
      {{- end}}
      {{- end}}
    </div>
  </header>
  <div class="note-body">
    {{.Body}}
  </div>
  <a class="back-link bottom" href="{{href notesRoute}}">&larr; Return to Notes</a>
</article>`

// notFoundTemplate is shown for unknown note ids.
const notFoundTemplate = `<div class="not-found">
  <h1>Post not found</h1>
  <p>The note you are looking for does not exist.</p>
  <a class="back-link" href="{{href notesRoute}}">&larr; Return to Notes</a>
</div>`

// shellTemplate holds every view of the single-page build.
const shellTemplate = `{{range .}}<section data-route="{{.Kind}}"{{with .ID}} data-id="{{.}}"{{end}}{{if ne .Kind "home"}} hidden{{end}}>
{{.Body}}
</section>
{{end}}`

// cssContent is the stylesheet for all pages.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-secondary: #f4f4f5;
  --text: #18181b;
  --text-secondary: #3f3f46;
  --text-muted: #71717a;
  --border: #e4e4e7;
  --accent: #1d4ed8;
  --accent-light: #dbeafe;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
  --content-max-width: 56rem;
}

[data-theme="dark"] {
  --bg: #18181b;
  --bg-secondary: #27272a;
  --text: #f4f4f5;
  --text-secondary: #d4d4d8;
  --text-muted: #a1a1aa;
  --border: #3f3f46;
  --accent: #60a5fa;
  --accent-light: #1e3a8a;
  --shadow: 0 1px 3px rgba(0,0,0,0.4);
}

*, *::before, *::after { box-sizing: border-box; }

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  background: var(--bg);
  color: var(--text);
  line-height: 1.6;
}

a { color: var(--accent); text-decoration: none; }
a:hover { text-decoration: underline; }

.navbar { border-bottom: 1px solid var(--border); background: var(--bg); position: sticky; top: 0; }
.nav-inner { max-width: var(--content-max-width); margin: 0 auto; padding: 0.75rem 1rem; display: flex; align-items: center; justify-content: space-between; }
.nav-brand { font-weight: 700; color: var(--text); }
.nav-links { display: flex; align-items: center; gap: 1rem; }
.nav-links a { color: var(--text-secondary); }
.nav-links a.active { color: var(--accent); font-weight: 600; }
.theme-form { margin: 0; }
.theme-toggle { background: none; border: 1px solid var(--border); border-radius: 9999px; color: var(--text); cursor: pointer; padding: 0.25rem 0.6rem; }
[data-theme="dark"] .sun-icon { display: inline; }
[data-theme="dark"] .moon-icon { display: none; }
[data-theme="light"] .sun-icon { display: none; }
[data-theme="light"] .moon-icon { display: inline; }

.container { max-width: var(--content-max-width); margin: 0 auto; padding: 2rem 1rem; }

.cv-header { border-bottom: 1px solid var(--border); padding-bottom: 1.5rem; }
.cv-header h1 { margin: 0; font-size: 2.25rem; }
.other-name { font-weight: 400; color: var(--text-muted); font-size: 1.25rem; }
.cv-title { color: var(--accent); font-size: 1.2rem; font-weight: 500; }
.contact-bar { display: flex; gap: 0.75rem; align-items: center; }
.copy-email { background: var(--bg-secondary); border: 1px solid var(--border); border-radius: 9999px; color: var(--text-secondary); cursor: pointer; font-size: 0.8rem; padding: 0.2rem 0.7rem; }
.about { display: flex; gap: 2rem; align-items: flex-start; margin: 2rem 0; }
.portrait { width: 14rem; height: 14rem; border-radius: 0.75rem; object-fit: cover; }
.cv-section { border-top: 1px solid var(--border); margin-top: 2.5rem; padding-top: 1rem; }
.cv-section > h2 { color: var(--accent); }
.research-item, .skill-card, .note-card article { background: var(--bg-secondary); border-radius: 0.75rem; padding: 1rem 1.25rem; box-shadow: var(--shadow); }
.research-head, .education-head { display: flex; justify-content: space-between; gap: 1rem; }
.research-head h3, .education-head h3 { margin: 0; }
.research-links a { border: 1px solid var(--accent-light); border-radius: 9999px; font-size: 0.75rem; margin-left: 0.4rem; padding: 0.1rem 0.6rem; }
.authors, .journal { color: var(--text-muted); font-style: italic; font-size: 0.9rem; }
.education-item { margin-bottom: 1.5rem; }
.dates, .institution { color: var(--text-muted); font-size: 0.9rem; }
.skills-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(16rem, 1fr)); gap: 1.5rem; }
.chips { display: flex; flex-wrap: wrap; gap: 0.5rem; }
.chip, .tag { background: var(--accent-light); border-radius: 9999px; font-size: 0.75rem; padding: 0.1rem 0.6rem; }

.notes-head { display: flex; justify-content: space-between; align-items: center; border-bottom: 1px solid var(--border); margin-bottom: 2rem; }
.notes-list { display: flex; flex-direction: column; gap: 1.5rem; }
.note-card { color: inherit; display: block; }
.note-card:hover { text-decoration: none; }
.note-card h3 { margin: 0 0 0.5rem; }
.note-meta { color: var(--text-muted); display: flex; flex-wrap: wrap; gap: 0.5rem; align-items: center; font-size: 0.9rem; }
.read-more { color: var(--accent); font-size: 0.9rem; }

.note-header { border-bottom: 1px solid var(--border); margin-bottom: 2rem; padding-bottom: 1rem; }
.note-body pre { border-radius: 0.5rem; overflow-x: auto; padding: 1rem; }
.note-body code { font-family: "SFMono-Regular", Consolas, monospace; font-size: 0.9em; }
.note-body :not(pre) > code { background: var(--bg-secondary); border-radius: 0.25rem; padding: 0.1rem 0.3rem; }
.note-body table { border-collapse: collapse; }
.note-body th, .note-body td { border: 1px solid var(--border); padding: 0.4rem 0.8rem; }
.back-link { display: inline-block; margin: 1rem 0; }
.back-link.bottom { border-top: 1px solid var(--border); display: block; margin-top: 3rem; padding-top: 1rem; }

.not-found { text-align: center; padding: 4rem 0; }

.site-footer { border-top: 1px solid var(--border); color: var(--text-muted); font-size: 0.85rem; margin-top: 4rem; text-align: center; }

@media (max-width: 640px) {
  .about { flex-direction: column; }
  .notes-head { flex-direction: column; align-items: flex-start; }
}
`

// jsContent handles the theme toggle, the copy-email button and the notes
// sort control.
const jsContent = `(function() {
  "use strict";

  var html = document.documentElement;
  var serverTheme = html.getAttribute("data-theme-source") === "server";

  // ===== Theme toggle =====
  function setTheme(theme) {
    html.setAttribute("data-theme", theme);
    try { localStorage.setItem("theme", theme); } catch (e) {}
  }

  var themeToggle = document.getElementById("theme-toggle");
  if (themeToggle && !serverTheme) {
    themeToggle.addEventListener("click", function() {
      var current = html.getAttribute("data-theme") || "light";
      setTheme(current === "dark" ? "light" : "dark");
    });
  }

  // ===== Copy email =====
  document.querySelectorAll(".copy-email").forEach(function(btn) {
    btn.addEventListener("click", function() {
      var email = btn.getAttribute("data-email");
      var label = btn.textContent;
      try {
        navigator.clipboard.writeText(email).then(function() {
          btn.textContent = "Copied!";
          setTimeout(function() { btn.textContent = label; }, 2000);
        }, function() {});
      } catch (e) {}
    });
  });

  // ===== Notes sort =====
  var sortSelect = document.getElementById("notes-sort");
  if (sortSelect) {
    sortSelect.addEventListener("change", function() {
      var form = sortSelect.form;
      if (form && form.hasAttribute("data-server")) {
        form.submit();
        return;
      }
      var list = document.getElementById("notes-list");
      if (!list) return;
      var cards = Array.prototype.slice.call(list.querySelectorAll(".note-card"));
      var oldest = sortSelect.value === "oldest";
      cards.sort(function(a, b) {
        var ka = Number(a.getAttribute("data-sort-key"));
        var kb = Number(b.getAttribute("data-sort-key"));
        return oldest ? ka - kb : kb - ka;
      });
      cards.forEach(function(card) { list.appendChild(card); });
    });
  }
})();
`

// routerJS shows the single-page section matching the URL fragment:
// "#notes" the list, "#post/{id}" a note, anything else the CV.
const routerJS = `(function() {
  "use strict";

  function parse(hash) {
    var frag = hash.replace(/^#/, "").replace(/^\/+|\/+$/g, "");
    if (frag === "notes") return { kind: "notes" };
    if (frag.indexOf("post/") === 0) {
      var id = frag.slice(5);
      try { id = decodeURIComponent(id); } catch (e) {}
      if (id && !/[\/?#]/.test(id)) return { kind: "post", id: id };
    }
    return { kind: "home" };
  }

  function show(route) {
    var sections = document.querySelectorAll("section[data-route]");
    var target = null;
    sections.forEach(function(s) {
      var kind = s.getAttribute("data-route");
      if (kind === route.kind && (route.kind !== "post" || s.getAttribute("data-id") === route.id)) {
        target = s;
      }
    });
    if (!target) {
      target = document.querySelector('section[data-route="not-found"]');
    }
    sections.forEach(function(s) { s.hidden = s !== target; });
    document.querySelectorAll("[data-nav]").forEach(function(a) {
      var active = a.getAttribute("data-nav") === (route.kind === "home" ? "home" : "notes");
      a.classList.toggle("active", active);
    });
    window.scrollTo(0, 0);
  }

  window.addEventListener("hashchange", function() { show(parse(location.hash)); });
  show(parse(location.hash));
})();
`
