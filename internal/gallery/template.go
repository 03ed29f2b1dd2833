package gallery

import "text/template"

// documentTemplate is shared by every variant. Data is a document value.
const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  body {
    font-family: Arial, sans-serif;
    background: #f5f5f5;
    margin: 20px;
  }
  .gallery {
    display: grid;
    grid-template-columns: repeat(auto-fill, minmax(160px, 1fr));
    gap: 15px;
  }
  .item {
    background: white;
    border-radius: 10px;
    padding: 10px;
    box-shadow: 0 2px 6px rgba(0,0,0,0.1);
    cursor: pointer;
    transition: transform 0.2s ease;
    display: flex;
    justify-content: center;
    align-items: center;
    flex-direction: column;
    height: 160px;
  }
  .item:hover {
    transform: scale(1.03);
  }
  .item img {
    max-width: 100%;
    max-height: 120px;
    object-fit: contain;
    display: block;
    background: linear-gradient(135deg, #ffffff, #cccccc);
    border-radius: 6px;
    padding: 5px;
  }
  .filename {
    font-size: 12px;
    color: #333;
    margin-top: 6px;
    word-wrap: break-word;
  }
  .lightbox {
    display: none;
    position: fixed;
    z-index: 100;
    left: 0;
    top: 0;
    width: 100%;
    height: 100%;
    background: rgba(255,255,255,0.95);
    justify-content: center;
    align-items: center;
  }
  .lightbox img {
    max-width: 90%;
    max-height: 90%;
    box-shadow: 0 4px 20px rgba(0,0,0,0.3);
    background: linear-gradient(135deg, #ffffff, #cccccc);
    border-radius: 8px;
  }
</style>
</head>
<body>
<div class="gallery">
{{range .Images}}  <div class="item"><img src="{{.}}" alt="">{{if $.Captions}}<div class="filename">{{.}}</div>{{end}}</div>
{{end}}</div>
<div class="lightbox" id="lightbox"><img src="" alt=""></div>
<script>
  const lightbox = document.getElementById('lightbox');
  const lightboxImg = lightbox.querySelector('img');
  document.querySelectorAll('.item img').forEach(img => {
    img.addEventListener('click', () => {
      lightboxImg.src = img.src;
      lightbox.style.display = 'flex';
    });
  });
  lightbox.addEventListener('click', () => {
    lightbox.style.display = 'none';
  });
</script>
</body>
</html>
`

// tmpl is parsed once at package init; a parse failure is a programming
// error, hence Must.
var tmpl = template.Must(template.New("gallery").Parse(documentTemplate))
