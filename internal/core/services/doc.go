// Package services implements the driving port interfaces: the five
// pipeline stages and the PipelineService that sequences them.
//
// Services depend only on domain and the driven ports. Every optional
// driven service may be nil; stages degrade instead of failing.
package services
