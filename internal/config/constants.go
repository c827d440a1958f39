package config

// Defaults applied by the normalizer.
const (
	DefaultFramework   = "express"
	DefaultRegion      = "ap-guangzhou"
	DefaultNamespace   = "default"
	DefaultRole        = ""
	DefaultHandler     = "index.main_handler"
	DefaultRuntime     = "Nodejs8.9"
	DefaultDescription = "This is a function created by serverless component"
	DefaultTimeout     = 3
	DefaultMemorySize  = 128

	DefaultProtocol    = "http"
	DefaultEnvironment = "release"

	RecordTypeCNAME  = "CNAME"
	DefaultDNSStatus = "enable"
	ApexSubDomain    = "@"
)

// ExcludeDefaults are appended to every function's exclude patterns.
var ExcludeDefaults = []string{".git/**", ".gitignore", ".serverless", ".DS_Store"}
