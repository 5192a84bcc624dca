package config

// Shaderfile represents the structure of the shaderbuild.yaml configuration file.
type Shaderfile struct {
	Version  string   `yaml:"version"`
	Tools    ToolsDTO `yaml:"tools"`
	Input    string   `yaml:"input"`
	Output   string   `yaml:"output"`
	Includes []string `yaml:"includes"`
	Ignore   []string `yaml:"ignore"`
	Parallel bool     `yaml:"parallel"`
	Binary   bool     `yaml:"binary"`
	Debug    bool     `yaml:"debug"`
}

// ToolsDTO holds the compiler paths of the configuration.
type ToolsDTO struct {
	Glslang  string `yaml:"glslang"`
	Slangc   string `yaml:"slangc"`
	SpirvVal string `yaml:"spirvval"`
}
