package manifest

// memberTemplate is the fixed shell of the regenerated member-crate manifest.
// Only the [dependencies] block varies between runs.
const memberTemplate = `[package]
name = "gkrust"
version = "0.1.0"

[lib]
path = "src/lib.rs"
crate-type = ["staticlib"]
test = false
doctest = false
bench = false
doc = false
plugin = false
harness = false

%s

[package.metadata.cargo-udeps.ignore]
normal = ["mozilla-central-workspace-hack"]
`

// workspaceHeader is the fixed package header of the regenerated root
// workspace manifest.
const workspaceHeader = `[package]
name = "mozilla-central-workspace-hack"
version = "0.1.0"
license = "MPL-2.0"
description = "Downstream extensions to mozilla-central-workspace-hack"
`

// vendorConfigFooter is appended to the captured cargo vendor output. Cargo
// treats lines starting with # as comments, so the same file works in two
// consumption modes: copied as-is to .cargo/config.toml, or preprocessed by
// the build system, which substitutes the @-delimited placeholders. The
// %s placeholder is the vendored crate tree relative to the source root.
const vendorConfigFooter = `
# Lines starting with # double as preprocessing directives. This file can be
# copied verbatim to $topsrcdir/.cargo/config.toml (e.g. for standalone rust
# build tasks), or preprocessed by the build system into a .cargo/config.toml
# with substituted paths.
#define REPLACE_NAME vendored-sources
#define VENDORED_DIRECTORY %s
# The plain section below is excluded when preprocessing: it would overlap
# with the preprocessed [source."@REPLACE_NAME@"] section and cargo would
# reject the file.
#ifndef REPLACE_NAME
[source.vendored-sources]
directory = "../third_party/rust"
#endif

# @REPLACE_NAME@ is not a legitimate source name, so cargo ignores this
# section when the file is consumed without preprocessing.
#filter substitution
[source."@REPLACE_NAME@"]
directory = "@top_srcdir@/@VENDORED_DIRECTORY@"
`
