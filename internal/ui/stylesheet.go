package ui

const stylesheet = `
:root { --primary: #6d28d9; --back: #fafafa; --front: #1f2937; --muted: #6b7280; }
body { margin: 0; background: var(--back); color: var(--front); font-family: Inter, system-ui, sans-serif; }
.layout { max-width: 1100px; margin: 0 auto; padding: 2rem 1rem; }
.page-title { color: var(--primary); margin-bottom: 1.5rem; }
.records { width: 100%; border-collapse: collapse; table-layout: fixed; box-shadow: 0 0 0 2px var(--primary); border-radius: 6px; }
.records th, .records td { padding: 10px 16px; text-align: left; overflow-wrap: anywhere; }
.records th { color: var(--primary); }
.records th a { color: inherit; text-decoration: none; }
.records tbody tr:nth-child(odd) { background: #f3f0ff; }
.records td.empty { text-align: center; color: var(--muted); }
.sort-indicator { margin-left: 6px; font-size: 0.8em; }
.filter { display: flex; gap: 8px; margin-bottom: 1rem; flex-wrap: wrap; }
.filter .clear { align-self: center; }
.pagination { display: flex; gap: 12px; margin-top: 1rem; font-weight: 900; }
.page { display: inline-flex; justify-content: center; align-items: center; width: 40px; height: 40px; border-radius: 6px; border: 2px solid var(--primary); color: var(--primary); text-decoration: none; }
.page.active { background: var(--primary); color: var(--back); }
.page.disabled { color: gray; border-color: gray; cursor: not-allowed; }
.muted { color: var(--muted); font-size: 0.9em; }
.error { color: #b91c1c; }
`
