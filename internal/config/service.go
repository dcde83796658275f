package config

// Store backend selection
const (
	StoreBackendPostgres = "postgres"
	StoreBackendSupabase = "supabase"
)

type ServiceConfig struct {
	Name            string         `yaml:"name"`
	Environment     string         `yaml:"environment"`
	Version         string         `yaml:"version"`
	ClientURL       string         `yaml:"client_url"`
	StripeSecretKey string         `yaml:"stripe_secret_key"`
	ServiceKey      string         `yaml:"service_key"`
	Store           string         `yaml:"store"`
	Supabase        SupabaseConfig `yaml:"supabase"`
}

type SupabaseConfig struct {
	JWTSecret  string `yaml:"jwt_secret"`
	ProjectURL string `yaml:"project_url"`
	APIKey     string `yaml:"api_key"`
}
