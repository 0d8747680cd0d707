//go:build !(numa && linux && cgo) && !(numa && windows)

// File: affinity/bind_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// No-op node binding for builds without NUMA support. BindThread already
// short-circuits on an empty topology; these exist to satisfy the contract.

package affinity

func bindThreadPlatform(_, _ int) {}

func unbindThreadPlatform() {}
