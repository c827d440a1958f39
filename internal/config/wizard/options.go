package wizard

import "github.com/charmbracelet/huh"

// RegionOption represents a region functions can be deployed to.
type RegionOption struct {
	Value       string
	Description string
}

// Regions contains the regions offered by the wizard.
var Regions = []RegionOption{
	{Value: "ap-guangzhou", Description: "Guangzhou"},
	{Value: "ap-shanghai", Description: "Shanghai"},
	{Value: "ap-beijing", Description: "Beijing"},
	{Value: "ap-chengdu", Description: "Chengdu"},
	{Value: "ap-hongkong", Description: "Hong Kong"},
	{Value: "ap-singapore", Description: "Singapore"},
	{Value: "ap-tokyo", Description: "Tokyo"},
	{Value: "na-siliconvalley", Description: "Silicon Valley"},
	{Value: "eu-frankfurt", Description: "Frankfurt"},
}

// Frameworks contains the web frameworks the wizard knows about.
var Frameworks = []huh.Option[string]{
	huh.NewOption("Express", "express"),
	huh.NewOption("Koa", "koa"),
	huh.NewOption("Egg", "egg"),
	huh.NewOption("Next.js", "nextjs"),
	huh.NewOption("Nuxt.js", "nuxtjs"),
	huh.NewOption("Flask", "flask"),
	huh.NewOption("Django", "django"),
	huh.NewOption("Laravel", "laravel"),
}

// Runtimes contains the function runtimes offered by the wizard.
var Runtimes = []huh.Option[string]{
	huh.NewOption("Node.js 8.9", "Nodejs8.9"),
	huh.NewOption("Node.js 10.15", "Nodejs10.15"),
	huh.NewOption("Node.js 12.16", "Nodejs12.16"),
	huh.NewOption("Python 3.6", "Python3.6"),
	huh.NewOption("PHP 7", "Php7"),
}

// Protocols contains the gateway protocol choices.
var Protocols = []huh.Option[string]{
	huh.NewOption("HTTP", "http"),
	huh.NewOption("HTTPS", "https"),
}

// RecordLines contains the DNS record lines offered for custom domains.
var RecordLines = []huh.Option[string]{
	huh.NewOption("Default", "默认"),
	huh.NewOption("China Telecom", "电信"),
	huh.NewOption("China Unicom", "联通"),
	huh.NewOption("China Mobile", "移动"),
	huh.NewOption("Overseas", "境外"),
}

// RegionsToOptions converts Regions to huh options.
func RegionsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Regions))
	for i, r := range Regions {
		opts[i] = huh.NewOption(r.Value+" - "+r.Description, r.Value)
	}
	return opts
}

// frameworkHandler returns the handler entry point a framework template uses.
func frameworkHandler(framework string) string {
	if framework == "laravel" {
		return "php_handler.handler"
	}
	return "sl_handler.handler"
}
