// FILE: internal/constant/catalog.go
package constant

// The model catalog maps the short model ids the client sends to the
// provider-specific model names, and prices each id in credits.

const (
	// DefaultGenerationCost applies to model ids missing from CreditCosts.
	DefaultGenerationCost = 2

	RemoveBackgroundCost = 2
	StyleTransferCost    = 3

	// Image-to-image models used by the tools endpoints.
	RemoveBackgroundModel = "briaai/RMBG-1.4"
	StyleTransferModel    = "timbrooks/instruct-pix2pix"
)

// ProviderModels translates a public model id into the upstream name.
// Unrecognized ids pass through unchanged.
var ProviderModels = map[string]string{
	"flux-schnell": "black-forest-labs/FLUX.1-schnell",
	"flux-dev":     "black-forest-labs/FLUX.1-dev",
	"sdxl":         "stabilityai/stable-diffusion-xl-base-1.0",
	"sd-turbo":     "stabilityai/sd-turbo",
	"wan-video":    "wan-video/wan-2.2-t2v-fast",
}

// CreditCosts prices each public model id.
var CreditCosts = map[string]int{
	"flux-schnell": 1,
	"flux-dev":     4,
	"sdxl":         2,
	"sd-turbo":     1,
	"wan-video":    10,
}

// ResolveModel returns the provider model name for a public id.
func ResolveModel(id string) string {
	if mapped, ok := ProviderModels[id]; ok {
		return mapped
	}
	return id
}

// CostFor returns the credit cost of a public model id.
func CostFor(id string) int {
	if cost, ok := CreditCosts[id]; ok {
		return cost
	}
	return DefaultGenerationCost
}
