// Package http provides optional HTTP adapters for the documentation APIs.
//
// Admin routes mount under /admin/api:
//   - Folders: /folders, /folders/{id}
//   - Pages: /pages, /pages/{id}, /pages/{id}/publish, /pages/{id}/unpublish
//   - Preview: /preview
//   - Settings: /settings, /settings/export, /settings/import, /settings/reset
//
// Public routes mount under /api and only ever expose published pages:
//   - /tree, /sidebar, /landing
//   - /pages/{folder}/{page}, /pages/{folder}/{page}/toc
//   - /toc, /active-heading
//
// Host applications can register handlers on their own mux as needed.
package http
