package web

import (
	"context"

	"github.com/a-h/templ"
)

const stylesheet = `
body{font-family:system-ui,sans-serif;margin:0;background:#f7f9fc;color:#1f2933}
header{background:#0b5ed7;color:#fff;padding:1rem 2rem;display:flex;justify-content:space-between;align-items:center}
header a{color:#fff;margin-left:1rem;text-decoration:none}
main{max-width:960px;margin:2rem auto;padding:0 1rem}
footer{text-align:center;color:#6b7280;padding:2rem 0;font-size:.85rem}
.card{background:#fff;border-radius:8px;box-shadow:0 1px 3px rgba(0,0,0,.1);padding:1.5rem;margin-bottom:1.5rem}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(200px,1fr));gap:1rem}
.badge{display:inline-block;padding:.15rem .6rem;border-radius:999px;font-size:.8rem;margin:0 .25rem .25rem 0;background:#e5e7eb}
.badge.Positive,.badge.Low{background:#d1fae5;color:#065f46}
.badge.Neutral,.badge.Medium{background:#fef3c7;color:#92400e}
.badge.Negative,.badge.High{background:#fee2e2;color:#991b1b}
.error{color:#b91c1c;font-size:.85rem}
label{display:block;font-weight:600;margin:1rem 0 .35rem}
input[type=text],select,textarea{width:100%;padding:.5rem;border:1px solid #cbd5e1;border-radius:6px;box-sizing:border-box}
button{background:#0b5ed7;color:#fff;border:0;border-radius:6px;padding:.6rem 1.4rem;margin-top:1rem;cursor:pointer}
table{width:100%;border-collapse:collapse}
th,td{text-align:left;padding:.5rem;border-bottom:1px solid #e5e7eb;font-size:.9rem;vertical-align:top}
.stars label{display:inline;font-weight:400;margin-right:.75rem}
.product img{width:100%;height:auto;border-radius:6px}
`

func layout(title string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.rawf(`<title>%s | Smart Feedback Collector</title>`, esc(title))
		h.rawf(`<style>%s</style></head><body>`, stylesheet)
		h.raw(`<header><strong>Smart Feedback Collector</strong><nav>`)
		h.raw(`<a href="/feedback">Give Feedback</a><a href="/admin">Admin</a></nav></header><main>`)
		h.child(ctx, body)
		h.raw(`</main><footer>&copy; 2025 Smart Feedback Collector</footer></body></html>`)
	})
}

func badge(h *htmlWriter, class, label string) {
	h.rawf(`<span class="badge %s">%s</span>`, esc(class), esc(label))
}
