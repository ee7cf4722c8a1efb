package shared

type ServerConfig struct {
	Kard   KardConfig   `mapstructure:"kard" validate:"required"`
	Site   SiteConfig   `mapstructure:"site" validate:"required"`
	Data   DataConfig   `mapstructure:"data" validate:"required"`
	Google GoogleConfig `mapstructure:"google"`
}

type KardConfig struct {
	BaseURL        string         `mapstructure:"baseURL" validate:"omitempty,url"`
	ProductionHost string         `mapstructure:"productionHost" validate:"omitempty,host"`
	Cron           CronConfig     `mapstructure:"cron" validate:"required"`
	Listener       ListenerConfig `mapstructure:"listener" validate:"required"`
	QR             QRConfig       `mapstructure:"qr" validate:"required"`
}

type SiteConfig struct {
	Name              string   `mapstructure:"name" validate:"required"`
	Tagline           string   `mapstructure:"tagline"`
	CompanyInfo       string   `mapstructure:"companyInfo"`
	CompanyWebsite    string   `mapstructure:"companyWebsite" validate:"omitempty,url"`
	CompanyProfilePdf string   `mapstructure:"companyProfilePdf"`
	Sections          []string `mapstructure:"sections"`
	DefaultSection    string   `mapstructure:"defaultSection"`
}

type DataConfig struct {
	ContactsFile string `mapstructure:"contactsFile" validate:"required"`
}

type GoogleConfig struct {
	ApplicationCredentials string        `mapstructure:"applicationCredentials"`
	Storage                StorageConfig `mapstructure:"storage"`
}

type CronConfig struct {
	TimeZone string `mapstructure:"timeZone" validate:"required"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

type QRConfig struct {
	Mode string `mapstructure:"mode" validate:"required,qr_mode"`
	Size int    `mapstructure:"size" validate:"omitempty,min=64,max=4096"`
	Logo string `mapstructure:"logo"`
}

type StorageConfig struct {
	Bucket            string `mapstructure:"bucket" validate:"required_with=EnableDatasetSync"`
	Object            string `mapstructure:"object" validate:"required_with=EnableDatasetSync"`
	SyncSchedule      string `mapstructure:"syncSchedule" validate:"required_with=EnableDatasetSync"`
	EnableDatasetSync bool   `mapstructure:"enableDatasetSync"`
}
