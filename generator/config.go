package generator

// Config describes the command built by Main.
type Config struct {
	Use     string
	Short   string
	Long    string
	Version string

	DefaultInput              string
	DefaultOutput             string
	DefaultLanguage           string
	DefaultAttributeNamespace string
	DefaultFormatter          string

	// ConfigName is the base name of the settings file looked up in
	// ConfigPaths, ".extconf-gen" when empty.
	ConfigName  string
	ConfigPaths []string

	// EnvPrefix prefixes the environment variables overriding flags,
	// "EXTCONF_GEN" when empty.
	EnvPrefix string
}

func (c *Config) configName() string {
	if c.ConfigName == "" {
		return ".extconf-gen"
	}
	return c.ConfigName
}

func (c *Config) configPaths() []string {
	if len(c.ConfigPaths) == 0 {
		return []string{"."}
	}
	return c.ConfigPaths
}

func (c *Config) envPrefix() string {
	if c.EnvPrefix == "" {
		return "EXTCONF_GEN"
	}
	return c.EnvPrefix
}
