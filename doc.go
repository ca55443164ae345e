// Package planfft caches prepared one-dimensional transform plans.
//
// Preparing a plan (twiddle tables, kernel choice, scratch storage) costs
// far more than running it. A Manager keeps up to a fixed number of
// prepared entries keyed by length, kind, direction, buffer alignment and
// planning flags, and reuses them across calls:
//
//	m := planfft.NewManager(nil, planfft.WithCapacity(10))
//	defer m.Close()
//
//	buf := make([]complex128, 8*4) // four consecutive length-8 signals
//	err := m.TransformComplex(buf, 8, planfft.Forward, 4, false)
//
// The package-level Complex and Real functions use a process-wide manager
// per transform kind, configured from the environment (see Config) on
// first use and released by Shutdown.
//
// Real transforms use the packed standard layout
// r0 r1 i1 r2 i2 ... [r(n/2) if n is even]. Backward transforms are
// unnormalized; pass normalize=true to scale by 1/n.
package planfft
