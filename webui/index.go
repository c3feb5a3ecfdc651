package webui

import "net/http"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

// indexHTML is the single-page front end. Kept inline so the binary stays
// self-contained; styles are fetched from /api/styles at load.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>DreamForge</title>
<style>
  body { font-family: system-ui, sans-serif; max-width: 880px; margin: 2rem auto; padding: 0 1rem; background: #16161d; color: #e8e8e8; }
  h1 { font-weight: 600; }
  label { display: block; margin-top: .75rem; font-size: .9rem; color: #aaa; }
  textarea, select, input { width: 100%; box-sizing: border-box; padding: .5rem; border-radius: 6px; border: 1px solid #333; background: #222230; color: #e8e8e8; }
  textarea { min-height: 4rem; }
  .row { display: flex; gap: 1rem; }
  .row > div { flex: 1; }
  button { margin-top: 1rem; padding: .6rem 1.4rem; border: none; border-radius: 6px; background: #6157d6; color: white; font-size: 1rem; cursor: pointer; }
  button:disabled { background: #444; cursor: wait; }
  #status { margin-top: .75rem; color: #9a9; min-height: 1.2rem; }
  #status.error { color: #d66; }
  #result img { max-width: 100%; margin-top: 1rem; border-radius: 8px; }
  #gallery { display: flex; flex-wrap: wrap; gap: .5rem; margin-top: 1rem; }
  #gallery img { width: 120px; height: 120px; object-fit: cover; border-radius: 6px; }
</style>
</head>
<body>
<h1>DreamForge</h1>
<label>Prompt</label>
<textarea id="prompt" placeholder="a lighthouse at dusk, storm clouds gathering"></textarea>
<div class="row">
  <div><label>Style</label><select id="style"></select></div>
  <div><label>Width</label><input id="width" type="number" value="512" step="8"></div>
  <div><label>Height</label><input id="height" type="number" value="512" step="8"></div>
  <div><label>Steps</label><input id="steps" type="number" value="20"></div>
  <div><label>Seed (blank = random)</label><input id="seed" type="number"></div>
</div>
<label><input id="enhance" type="checkbox" checked style="width:auto"> Enhance prompt with quality keywords</label>
<button id="go">Generate</button>
<div id="status"></div>
<div id="result"></div>
<h2>Recent</h2>
<div id="gallery"></div>
<script>
const $ = id => document.getElementById(id);

async function loadStyles() {
  const res = await fetch('/api/styles');
  const data = await res.json();
  for (const s of data.styles) {
    const opt = document.createElement('option');
    opt.value = s.id;
    opt.textContent = s.name;
    $('style').appendChild(opt);
  }
  $('style').value = 'none';
}

async function loadRecent() {
  const res = await fetch('/api/recent?limit=12');
  const data = await res.json();
  $('gallery').innerHTML = '';
  for (const g of data.generations) {
    if (!g.thumbnailPath && !g.imagePath) continue;
    const a = document.createElement('a');
    a.href = g.imagePath;
    a.title = g.prompt + ' (seed ' + g.seed + ')';
    const img = document.createElement('img');
    img.src = g.thumbnailPath || g.imagePath;
    a.appendChild(img);
    $('gallery').appendChild(a);
  }
}

$('go').addEventListener('click', async () => {
  const body = {
    prompt: $('prompt').value,
    style: $('style').value,
    width: parseInt($('width').value) || 0,
    height: parseInt($('height').value) || 0,
    steps: parseInt($('steps').value) || 0,
    enhance: $('enhance').checked,
  };
  if ($('seed').value !== '') body.seed = parseInt($('seed').value);

  $('go').disabled = true;
  $('status').className = '';
  $('status').textContent = 'Generating (queued behind any running request)...';
  try {
    const res = await fetch('/api/generate', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify(body),
    });
    const data = await res.json();
    if (!res.ok) {
      $('status').className = 'error';
      $('status').textContent = data.message || data.errorKind;
      return;
    }
    $('status').textContent = data.status + ' (seed ' + data.seedUsed + ', ' + data.durationMs + ' ms)';
    $('result').innerHTML = '<img src="data:image/png;base64,' + data.image + '">';
    loadRecent();
  } catch (err) {
    $('status').className = 'error';
    $('status').textContent = 'Request failed: ' + err;
  } finally {
    $('go').disabled = false;
  }
});

loadStyles();
loadRecent();
</script>
</body>
</html>
`
