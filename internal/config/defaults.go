package config

// Default file locations, relative to the working directory the scheduler
// runs the monitor in.
const (
	DefaultConfigPath = "config/mauser.yaml"
	DefaultStatePath  = "data/state.json"
)

// DefaultSuccessMarkers are the substrings whose presence on the
// post-login page confirms an authenticated session.
var DefaultSuccessMarkers = []string{"minha conta", "logout", "sair"}

func applyDefaults(c *Config) {
	if len(c.Login.SuccessMarkers) == 0 {
		c.Login.SuccessMarkers = DefaultSuccessMarkers
	}
	for i := range c.Products {
		if c.Products[i].Name == "" {
			c.Products[i].Name = c.Products[i].URL
		}
	}
}
