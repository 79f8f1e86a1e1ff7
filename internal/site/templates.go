package site

// layoutTemplate is the html/template wrapping every page.
//
// In live mode only the current page body is present and client.js keeps it
// in step with the server over /ws. In static mode every page body is
// present and client.js switches between them locally.
const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.Brand}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body data-mode="{{.Mode}}" data-current="{{.Current}}" data-limit="{{.Limit}}">
  <header class="nav-container">
    <div class="nav-inner">
      <a class="nav-logo" href="{{.BasePath}}#home" data-page="home">{{.Brand}}</a>
      <nav class="nav-links">
        {{range .Nav}}<a class="nav-link{{if .Active}} active{{end}}" href="{{$.BasePath}}{{.Fragment}}" data-page="{{.ID}}">{{.Label}}</a>
        {{end}}<button class="nav-link" id="search-open" aria-label="Search">Search</button>
      </nav>
    </div>
  </header>

  <div class="search-modal" id="search-modal" hidden>
    <div class="search-content">
      <div class="search-header">
        <h2>Search</h2>
        <button class="search-close-btn" id="search-close" aria-label="Close search">&times;</button>
      </div>
      <input type="text" class="search-input" id="search-input" placeholder="Search anything..." autocomplete="off">
      <div class="search-results" id="search-results">
        <div class="search-hints">
          <p>Try searching for: {{range $i, $h := .Hints}}{{if $i}}, {{end}}{{$h}}{{end}}</p>
        </div>
      </div>
    </div>
  </div>

  <main class="main-content" id="main-content">
    {{if .Sections}}{{range .Sections}}<section class="page-container" data-page="{{.ID}}"{{if not .Active}} hidden{{end}}>
      {{.Body}}
    </section>
    {{end}}{{else}}<section class="page-container" data-page="{{.Current}}">
      {{.Body}}
    </section>{{end}}
  </main>

  <footer class="footer">
    <p class="footer-text">&copy; {{.Year}} {{.Brand}}. All rights reserved.</p>
  </footer>
  <script src="{{.BasePath}}client.js"></script>
</body>
</html>`

// cssContent is the stylesheet shared by live and exported pages.
const cssContent = `:root {
  --bg: #0b0d12;
  --fg: #e8eaf0;
  --muted: #9aa3b2;
  --accent: #7fb86d;
  --card: #151925;
  --radius: 12px;
}
* { box-sizing: border-box; }
body { margin: 0; background: var(--bg); color: var(--fg); font-family: system-ui, sans-serif; line-height: 1.6; }
a { color: var(--accent); }
.nav-container { position: sticky; top: 0; background: rgba(11, 13, 18, 0.9); backdrop-filter: blur(8px); z-index: 10; }
.nav-inner { max-width: 1100px; margin: 0 auto; display: flex; align-items: center; justify-content: space-between; padding: 16px 24px; }
.nav-logo { font-weight: 700; font-size: 1.3rem; color: var(--fg); text-decoration: none; }
.nav-links { display: flex; gap: 8px; }
.nav-link { background: none; border: 0; color: var(--muted); padding: 8px 14px; border-radius: var(--radius); cursor: pointer; text-decoration: none; font: inherit; }
.nav-link.active, .nav-link:hover { color: var(--fg); background: var(--card); }
.main-content { max-width: 1100px; margin: 0 auto; padding: 32px 24px; }
.page-container table { width: 100%; border-collapse: collapse; margin: 16px 0; }
.page-container th, .page-container td { padding: 10px; border-bottom: 1px solid var(--card); text-align: left; }
.search-modal { position: fixed; inset: 0; background: rgba(0, 0, 0, 0.7); display: flex; justify-content: center; padding-top: 10vh; z-index: 20; }
.search-modal[hidden] { display: none; }
.search-content { width: min(640px, 92vw); background: var(--card); border-radius: var(--radius); padding: 24px; max-height: 75vh; overflow: auto; }
.search-header { display: flex; justify-content: space-between; align-items: center; }
.search-close-btn { background: none; border: 0; color: var(--fg); font-size: 1.6rem; cursor: pointer; }
.search-input { width: 100%; padding: 12px; border-radius: var(--radius); border: 1px solid #2a3042; background: var(--bg); color: var(--fg); font: inherit; }
.search-result-item { display: block; width: 100%; text-align: left; background: none; border: 0; border-bottom: 1px solid #2a3042; color: var(--fg); padding: 12px 0; cursor: pointer; font: inherit; }
.search-result-header { display: flex; justify-content: space-between; }
.search-result-page, .search-result-section, .search-results-count, .search-hints, .search-no-results { color: var(--muted); font-size: 0.9rem; }
.footer { text-align: center; color: var(--muted); padding: 32px; }
@media (max-width: 768px) { .nav-inner { flex-direction: column; gap: 8px; } .nav-links { flex-wrap: wrap; justify-content: center; } }
`

// jsContent drives navigation and search in the browser.
const jsContent = `(function() {
  "use strict";

  var body = document.body;
  var mode = body.dataset.mode;
  var limit = parseInt(body.dataset.limit, 10) || 8;
  var main = document.getElementById("main-content");
  var modal = document.getElementById("search-modal");
  var input = document.getElementById("search-input");
  var resultsEl = document.getElementById("search-results");
  var hintsHTML = resultsEl.innerHTML;
  var pages = ["home", "about", "store", "join", "ranks"];
  var socket = null;
  var index = null;

  function setActive(page) {
    body.dataset.current = page;
    document.querySelectorAll(".nav-link[data-page]").forEach(function(el) {
      el.classList.toggle("active", el.dataset.page === page);
    });
  }

  function showPage(page, html, fragment, scrollTop) {
    if (html !== undefined && html !== null) {
      main.innerHTML = '<section class="page-container" data-page="' + page + '">' + html + "</section>";
    } else {
      document.querySelectorAll("section[data-page]").forEach(function(el) {
        el.hidden = el.dataset.page !== page;
      });
    }
    setActive(page);
    if (fragment && location.hash !== fragment) {
      history.pushState(null, "", fragment);
    }
    if (scrollTop) {
      window.scrollTo({ top: 0, behavior: "smooth" });
    }
  }

  function escapeHTML(s) {
    return String(s).replace(/[&<>"']/g, function(c) {
      return { "&": "&amp;", "<": "&lt;", ">": "&gt;", '"': "&quot;", "'": "&#39;" }[c];
    });
  }

  function renderResults(query, results) {
    if (!query.trim()) {
      resultsEl.innerHTML = hintsHTML;
      return;
    }
    if (!results.length) {
      resultsEl.innerHTML = '<p class="search-no-results">No results found for &quot;' + escapeHTML(query) + "&quot;</p>";
      return;
    }
    var out = '<p class="search-results-count">' + results.length + " result" + (results.length !== 1 ? "s" : "") + "</p>";
    results.forEach(function(r) {
      out += '<button class="search-result-item" data-page="' + r.page + '">' +
        '<div class="search-result-header"><span class="search-result-title">' + escapeHTML(r.entry.title) + "</span>" +
        '<span class="search-result-page">' + r.page + "</span></div>" +
        '<p class="search-result-content">' + escapeHTML(r.entry.content) + "</p>" +
        '<span class="search-result-section">' + escapeHTML(r.entry.section) + "</span></button>";
    });
    resultsEl.innerHTML = out;
  }

  function closeSearch() {
    modal.hidden = true;
    input.value = "";
    resultsEl.innerHTML = hintsHTML;
  }

  // ===== Static mode: everything happens in the page =====
  function localSearch(query) {
    var q = query.trim().toLowerCase();
    var out = [];
    if (!q || !index) { return out; }
    for (var i = 0; i < pages.length && out.length < limit; i++) {
      var entries = index[pages[i]] || [];
      for (var j = 0; j < entries.length && out.length < limit; j++) {
        var e = entries[j];
        if (e.title.toLowerCase().indexOf(q) !== -1 ||
            e.content.toLowerCase().indexOf(q) !== -1 ||
            e.section.toLowerCase().indexOf(q) !== -1) {
          out.push({ page: pages[i], entry: e });
        }
      }
    }
    return out;
  }

  function localHash() {
    var page = location.hash.slice(1);
    if (pages.indexOf(page) !== -1) {
      showPage(page, null, null, true);
    }
  }

  // ===== Live mode: the server owns the router =====
  function send(msg) {
    if (socket && socket.readyState === WebSocket.OPEN) {
      socket.send(JSON.stringify(msg));
      return true;
    }
    return false;
  }

  function connect() {
    var proto = location.protocol === "https:" ? "wss:" : "ws:";
    socket = new WebSocket(proto + "//" + location.host + "/ws?fragment=" + encodeURIComponent(location.hash));
    socket.onmessage = function(ev) {
      var msg = JSON.parse(ev.data);
      switch (msg.type) {
        case "page":
          showPage(msg.page, msg.html, msg.fragment, msg.scroll_top);
          break;
        case "results":
          if (msg.query === input.value) { renderResults(msg.query, msg.results || []); }
          break;
        case "search_closed":
          closeSearch();
          break;
        case "error":
          console.warn("ploofyz:", msg.content);
          break;
      }
    };
  }

  function navigate(page) {
    if (mode === "static") {
      showPage(page, null, "#" + page, true);
      return;
    }
    if (!send({ type: "navigate", page: page })) {
      location.href = "/" + page;
    }
  }

  document.addEventListener("click", function(ev) {
    var item = ev.target.closest(".search-result-item");
    if (item) {
      ev.preventDefault();
      if (mode === "static") {
        navigate(item.dataset.page);
        closeSearch();
      } else {
        send({ type: "select", page: item.dataset.page });
      }
      return;
    }
    var link = ev.target.closest("[data-page]");
    if (link && link.tagName === "A") {
      ev.preventDefault();
      navigate(link.dataset.page);
    }
  });

  document.getElementById("search-open").addEventListener("click", function() {
    modal.hidden = false;
    setTimeout(function() { input.focus(); }, 100);
  });
  document.getElementById("search-close").addEventListener("click", closeSearch);

  input.addEventListener("input", function() {
    var q = input.value;
    if (mode === "static") {
      renderResults(q, localSearch(q));
    } else if (!send({ type: "search", query: q })) {
      fetch("/api/search?q=" + encodeURIComponent(q) + "&limit=" + limit)
        .then(function(r) { return r.json(); })
        .then(function(data) { if (q === input.value) { renderResults(q, data.results || []); } });
    }
  });

  if (mode === "static") {
    fetch("search-index.json").then(function(r) { return r.json(); }).then(function(data) { index = data; });
    window.addEventListener("hashchange", localHash);
    localHash();
  } else {
    window.addEventListener("hashchange", function() {
      send({ type: "hash", fragment: location.hash });
    });
    connect();
  }
})();
`
