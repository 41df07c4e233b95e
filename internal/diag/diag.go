// Package diag reports the host CPU features jsontok's callers might care
// about when deciding how big a buffer or token budget to use. jsontok
// itself is a plain byte-at-a-time scanner with no SIMD path, unlike
// minio-simdjson-go's tape parser, but the "info" CLI subcommand still wants
// to tell an operator what machine it's running on, so cpuid is wired in
// here rather than dropped for lack of a use.
package diag

import "github.com/klauspost/cpuid/v2"

// CPUInfo summarizes the fields an operator deciding on buffer sizing or
// worker counts for streamjson would want to see.
type CPUInfo struct {
	BrandName     string
	PhysicalCores int
	LogicalCores  int
	CacheLine     int
	Features      []string
}

// relevantFeatures lists the flags that matter for byte-scanning throughput:
// wide loads and the vector extensions a future SIMD whitespace-skip could
// use, unlike the crypto or virtualization flags cpuid also reports.
var relevantFeatures = []cpuid.FeatureID{
	cpuid.SSE2,
	cpuid.SSE42,
	cpuid.AVX,
	cpuid.AVX2,
	cpuid.AVX512F,
}

// Current reads cpuid.CPU, which detects once at process start, and returns
// the subset of it jsontok's CLI surfaces.
func Current() CPUInfo {
	info := CPUInfo{
		BrandName:     cpuid.CPU.BrandName,
		PhysicalCores: cpuid.CPU.PhysicalCores,
		LogicalCores:  cpuid.CPU.LogicalCores,
		CacheLine:     cpuid.CPU.CacheLine,
	}
	for _, f := range relevantFeatures {
		if cpuid.CPU.Has(f) {
			info.Features = append(info.Features, f.String())
		}
	}
	return info
}
