// Package internal contains the implementation packages of sfcc.
//
// # Package Organization
//
//   - ast: template node model, source locations, runtime helpers and patch flags
//   - transform: directive resolution (v-bind, v-on, v-model) and asset discovery
//   - codegen: render-function code generation for elements, v-for and v-if
//   - fixture: YAML template trees standing in for the parser
//   - compiler: the compile facade with result cache, metrics and a worker pool
//   - cache: LRU result cache and content hashing
//   - config: viper-backed configuration and validation
//   - errors: structured errors and template diagnostics
//   - logging: slog-backed structured logging
//   - watcher: fsnotify file watching with debouncing
//   - report: templ HTML compile reports
//   - shared: casing and tag classification helpers
//   - version: build metadata
//
// # Data Flow
//
// A fixture is decoded into an ast.RootNode, transform validates and
// annotates it, and codegen walks it once to produce the module text. The
// compiler package sequences these steps, and cmd exposes them as the
// compile, watch and inspection commands.
package internal
