package render

import "strings"

// regionFlags maps channel region codes to the flag label shown next to a
// stream link. Unknown codes fall back to the upper-cased code itself.
var regionFlags = map[string]string{
	"es":  "🇪🇸 Spain",
	"mx":  "🇲🇽 Mexico",
	"ar":  "🇦🇷 Argentina",
	"gb":  "🇬🇧 England",
	"uk":  "🇬🇧 England",
	"us":  "🇺🇸 USA",
	"ca":  "🇨🇦 Canada",
	"it":  "🇮🇹 Italy",
	"fr":  "🇫🇷 France",
	"de":  "🇩🇪 Germany",
	"pt":  "🇵🇹 Portugal",
	"br":  "🇧🇷 Brazil",
	"nl":  "🇳🇱 Netherlands",
	"tr":  "🇹🇷 Turkey",
	"pl":  "🇵🇱 Poland",
	"ru":  "🇷🇺 Russia",
	"ua":  "🇺🇦 Ukraine",
	"hr":  "🇭🇷 Croatia",
	"rs":  "🇷🇸 Serbia",
	"gr":  "🇬🇷 Greece",
	"ro":  "🇷🇴 Romania",
	"cz":  "🇨🇿 Czechia",
	"se":  "🇸🇪 Sweden",
	"no":  "🇳🇴 Norway",
	"dk":  "🇩🇰 Denmark",
	"fi":  "🇫🇮 Finland",
	"bg":  "🇧🇬 Bulgaria",
	"il":  "🇮🇱 Israel",
	"ppv": "📺 PPV",
}

// FlagLabel returns the display label for a region code.
func FlagLabel(code string) string {
	if label, ok := regionFlags[strings.ToLower(code)]; ok {
		return label
	}
	return strings.ToUpper(code)
}
