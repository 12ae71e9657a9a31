package cfg

type Cfg struct {
	// Content configuration
	DataPath     string
	SiteConfig   string
	TemplatePath string
	OutputDir    string
	ImagesDir    string

	// Application configuration
	Port        string
	WorkerCount int

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
