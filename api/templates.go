package api

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Generador de Códigos QR</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
    background: #0e1117;
    color: #fafafa;
    padding: 48px 32px;
  }
  .layout { display: flex; gap: 48px; flex-wrap: wrap; }
  .col { flex: 1 1 420px; }
  h1 { font-size: 36px; font-weight: 700; margin-bottom: 24px; }
  fieldset {
    border: 1px solid #333;
    border-radius: 8px;
    padding: 20px;
    margin-bottom: 20px;
  }
  legend { padding: 0 8px; color: #ccc; }
  label { display: block; font-size: 14px; margin: 12px 0 6px; }
  input[type=text] {
    width: 100%;
    padding: 8px 10px;
    border-radius: 6px;
    border: 1px solid #444;
    background: #262730;
    color: #fafafa;
  }
  input[type=range] { width: 100%; }
  .colors { display: flex; gap: 32px; justify-content: center; }
  button, .button {
    display: inline-block;
    margin-top: 16px;
    padding: 8px 16px;
    border-radius: 6px;
    border: 1px solid #555;
    background: #262730;
    color: #fafafa;
    cursor: pointer;
    text-decoration: none;
    font-size: 14px;
  }
  .primary { background: #ff4b4b; border-color: #ff4b4b; }
  .warning {
    background: #3e3a16;
    color: #ffffc2;
    border-radius: 6px;
    padding: 12px 16px;
  }
  .toast {
    background: #173928;
    color: #dffde9;
    border-radius: 6px;
    padding: 12px 16px;
    margin-bottom: 16px;
  }
  footer {
    margin-top: 48px;
    padding-top: 16px;
    border-top: 1px solid #333;
    display: flex;
    gap: 32px;
    align-items: center;
    font-size: 14px;
  }
  footer a { color: #ff4b4b; }
  footer form { display: inline; }
  footer button { margin-top: 0; }
</style>
</head>
<body>
<div class="layout">
  <div class="col">
    <h1>Generador de Códigos QR</h1>
    <form method="post" action="/generate">
      <fieldset>
        <label for="text">Ingresa la URL o texto aquí</label>
        <input type="text" id="text" name="text" value="{{.State.Text}}">
        <button type="submit" class="primary">Generar QR</button>
      </fieldset>
      <fieldset>
        <legend>Personaliza tu QR</legend>
        <div class="colors">
          <div>
            <label for="fg">Color del QR</label>
            <input type="color" id="fg" name="fg" value="{{.State.Style.Foreground}}">
          </div>
          <div>
            <label for="bg">Color de Fondo</label>
            <input type="color" id="bg" name="bg" value="{{.State.Style.Background}}">
          </div>
        </div>
        <label for="module_size">Tamaño del Módulo: <output id="module_size_out">{{.State.Style.ModuleSize}}</output></label>
        <input type="range" id="module_size" name="module_size"
               min="{{.MinModuleSize}}" max="{{.MaxModuleSize}}" value="{{.State.Style.ModuleSize}}"
               oninput="module_size_out.value = this.value">
        <label for="border">Ancho del Borde: <output id="border_out">{{.State.Style.BorderWidth}}</output></label>
        <input type="range" id="border" name="border"
               min="{{.MinBorderWidth}}" max="{{.MaxBorderWidth}}" value="{{.State.Style.BorderWidth}}"
               oninput="border_out.value = this.value">
        <button type="submit" formaction="/reset"
                title="Restablece todas las opciones de personalización a sus valores iniciales.">Restablecer Opciones</button>
      </fieldset>
    </form>
  </div>
  <div class="col">
    {{if .Toast}}<div class="toast">{{.Toast}}</div>{{end}}
    {{if .State.Warning}}<div class="warning">{{.State.Warning}}</div>{{end}}
    {{if .ImageSrc}}
    <img src="{{.ImageSrc}}" alt="Código QR">
    <div><a class="button" href="/download" download="{{.Filename}}">Descargar QR</a></div>
    {{end}}
  </div>
</div>
<footer>
  <span>Desarrollado con ❤️ por <a href="https://github.com/Sua7Dev">@Sua7Dev</a></span>
  <form method="post" action="/feedback">
    <button type="submit" name="rating" value="up" aria-label="Me gusta">👍</button>
    <button type="submit" name="rating" value="down" aria-label="No me gusta">👎</button>
  </form>
  {{if .Feedback}}<span>{{.Feedback}}</span>{{end}}
</footer>
</body>
</html>`
