package recommend

// complementaryCategories lists, per category, the categories usually rented
// alongside it.
var complementaryCategories = map[string][]string{
	"cameras":     {"lenses", "accessories", "grip", "monitors"},
	"lenses":      {"cameras", "accessories"},
	"lighting":    {"grip", "power", "accessories"},
	"audio":       {"cameras", "accessories"},
	"grip":        {"cameras", "lighting"},
	"drones":      {"accessories", "power"},
	"monitors":    {"cameras", "accessories"},
	"power":       {"cameras", "lighting"},
	"accessories": {"cameras", "lenses"},
}

// complementaryKeywords maps a trigger word in the anchor's name to words
// that mark a useful companion in a candidate's name.
var complementaryKeywords = map[string][]string{
	"camera":     {"lens", "gimbal", "tripod", "monitor", "battery", "card"},
	"cinema":     {"lens", "follow focus", "matte box", "monitor"},
	"lens":       {"filter", "follow focus", "matte box", "adapter"},
	"light":      {"stand", "softbox", "diffusion", "gel", "c-stand"},
	"led":        {"stand", "softbox", "battery"},
	"microphone": {"boom", "recorder", "windscreen", "wireless"},
	"mic":        {"boom", "recorder", "windscreen"},
	"drone":      {"battery", "nd filter", "controller"},
	"gimbal":     {"camera", "battery", "monitor"},
	"monitor":    {"cage", "battery", "sdi"},
}
