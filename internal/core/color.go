package core

// Color is a foreground colour understood by lipgloss: a hex string such as
// "#b91c1c" or an ANSI 256 code such as "245". Empty means terminal default.
type Color string

// Predefined colours for arena chrome.
const (
	ColorDefault Color = ""
	ColorGray    Color = "245"
	ColorWhite   Color = "15"
	ColorYellow  Color = "11"
	ColorRed     Color = "9"
	ColorGreen   Color = "10"
)

// SnakePalette holds the roster colours. Index 0 is the player.
var SnakePalette = []Color{
	"#b91c1c",
	"#1d4ed8",
	"#047857",
	"#b45309",
	"#6d28d9",
	"#be185d",
}

// PaletteColor returns the palette entry for a roster index, wrapping around.
func PaletteColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return SnakePalette[i%len(SnakePalette)]
}
