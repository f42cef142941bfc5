package bootstrap

import (
	"github.com/kbukum/scribeproxy/config"
)

// Config is the constraint for application configuration types. A struct
// that embeds config.ServiceConfig satisfies it through promoted methods,
// and overrides ApplyDefaults/Validate to cover its own sections.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
