package version

// EmptyValue is the value we use when running a version that wasn't built
// with `-ldflags "-X ..."`. This is helpful for telling when we're running in
// a unit test.
const EmptyValue = "set-by-ldflags"

// Version is the latest tag on git for releases. On non-release commits, it
// may include additional information such as the most recent commit hash.
var Version = EmptyValue
