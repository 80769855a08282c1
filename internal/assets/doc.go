// Package assets provides the stylesheets and HTML templates used by the
// dashboard pages and the standalone explainer documents.
//
//	Loader (interface)
//	    ├── EmbeddedLoader    - styles and templates compiled into the binary
//	    ├── FilesystemLoader  - overrides read from a directory on disk
//	    └── Resolver          - custom-first lookup with embedded fallback
//
// A custom directory mirrors the embedded layout:
//
//	{basePath}/
//	├── styles/{name}.css
//	└── templates/{name}.html
//
// Asset names are plain identifiers. FilesystemLoader resolves symlinks and
// refuses paths that leave basePath.
package assets
