package ports

// WGSLCompiler compiles WGSL sources to SPIR-V in process.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type WGSLCompiler interface {
	Compile(source []byte, debug bool) ([]byte, error)
}
