package http

import "html/template"

// pageTemplate 单页表单：三个滑块、一个提交按钮、结果/错误区域。
// 提交后页面经 /api/predict 获取结果，滑块取值保持不变，可直接重试。
var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

type pageData struct {
	Strings pageStrings
	Fields  []pageField
}

type pageField struct {
	ID      string
	Label   string
	Caption string
	Min     float64
	Max     float64
	Default float64
	Step    float64
}

const pageHTML = `<!DOCTYPE html>
<html lang="{{.Strings.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Strings.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0; background: #f5f7fa; color: #1f2937; }
.layout { display: flex; min-height: 100vh; }
.sidebar { width: 320px; background: #ffffff; border-right: 1px solid #e5e7eb; padding: 24px; }
.main { flex: 1; padding: 32px 48px; }
h1 { font-size: 1.5rem; }
h2 { font-size: 1.1rem; }
.field { margin-bottom: 24px; }
.field label { display: block; font-weight: 600; margin-bottom: 4px; }
.field input[type=range] { width: 100%; }
.field .value { font-variant-numeric: tabular-nums; }
.caption { font-size: 0.8rem; color: #6b7280; margin-top: 4px; }
button { background: #dc2626; color: #fff; border: none; border-radius: 6px; padding: 12px 20px; font-size: 1rem; cursor: pointer; }
button:disabled { background: #9ca3af; cursor: wait; }
.box { border-radius: 6px; padding: 16px; margin-top: 24px; display: none; }
.box.success { background: #dcfce7; border: 1px solid #16a34a; }
.box.error { background: #fee2e2; border: 1px solid #dc2626; }
.box.warning { background: #fef9c3; border: 1px solid #ca8a04; }
details { margin-top: 32px; }
</style>
</head>
<body>
<div class="layout">
  <aside class="sidebar">
    <h2>{{.Strings.InputsHeader}}</h2>
    <p class="caption">{{.Strings.InputsHint}}</p>
    {{range .Fields}}
    <div class="field">
      <label for="{{.ID}}">{{.Label}}: <span class="value" id="{{.ID}}-value">{{.Default}}</span></label>
      <input type="range" id="{{.ID}}" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Default}}">
      <div class="caption">{{.Caption}}</div>
    </div>
    {{end}}
  </aside>
  <main class="main">
    <h1>{{.Strings.Title}}</h1>
    <p>{{.Strings.Intro}}</p>
    <button id="predict">{{.Strings.SubmitLabel}}</button>
    <div class="box success" id="result">
      <h2>{{.Strings.ResultHeader}}</h2>
      <p><strong>{{.Strings.ResultPrefix}}</strong> <code id="result-value"></code></p>
      <p class="caption">{{.Strings.ResultNote}}</p>
    </div>
    <div class="box warning" id="warning"></div>
    <div class="box error" id="error"></div>
    <details>
      <summary>{{.Strings.AboutTitle}}</summary>
      <p>{{.Strings.AboutBody}}</p>
    </details>
  </main>
</div>
<script>
(function () {
  var fields = [{{range .Fields}}"{{.ID}}",{{end}}];
  fields.forEach(function (id) {
    var slider = document.getElementById(id);
    slider.addEventListener("input", function () {
      document.getElementById(id + "-value").textContent = slider.value;
    });
  });

  var button = document.getElementById("predict");
  var boxes = { result: document.getElementById("result"), warning: document.getElementById("warning"), error: document.getElementById("error") };

  function hideAll() {
    Object.keys(boxes).forEach(function (k) { boxes[k].style.display = "none"; });
  }

  button.addEventListener("click", function () {
    hideAll();
    button.disabled = true;
    var original = button.textContent;
    button.textContent = {{.Strings.Predicting}};
    fetch("/api/predict", {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({
        iron: parseFloat(document.getElementById("iron").value),
        air: parseFloat(document.getElementById("air").value),
        amine: parseFloat(document.getElementById("amine").value)
      })
    }).then(function (resp) {
      return resp.json().then(function (body) { return { status: resp.status, body: body }; });
    }).then(function (r) {
      if (r.status === 200) {
        document.getElementById("result-value").textContent = r.body.formatted;
        boxes.result.style.display = "block";
      } else if (r.status === 503) {
        boxes.warning.textContent = r.body.error;
        boxes.warning.style.display = "block";
      } else {
        boxes.error.textContent = r.body.error;
        boxes.error.style.display = "block";
      }
    }).catch(function (err) {
      boxes.error.textContent = String(err);
      boxes.error.style.display = "block";
    }).finally(function () {
      button.disabled = false;
      button.textContent = original;
    });
  });
})();
</script>
</body>
</html>
`
