package api

import "strings"

// Platform classifies the client runtime from its User-Agent string.
// The demo only cares whether the client is mobile and which flavor,
// so the option panel can suggest lighter capture settings.
type Platform struct {
	Mobile  bool `json:"mobile"`
	IOS     bool `json:"ios"`
	Android bool `json:"android"`
}

// DetectPlatform classifies a User-Agent string.
func DetectPlatform(ua string) Platform {
	var p Platform

	p.Android = strings.Contains(ua, "Android")
	p.IOS = strings.Contains(ua, "iPhone") ||
		strings.Contains(ua, "iPad") ||
		strings.Contains(ua, "iPod")
	p.Mobile = p.Android || p.IOS || strings.Contains(ua, "Mobile")

	return p
}
