package interactive

import "github.com/udisondev/openworld/internal/model"

type schemeRule struct {
	focus  []string // matched against the focus name
	visual string   // matched against the visual, for rules without focus names
	tag    string
}

// schemeTable maps focus names and visuals to animation schemes. First match wins.
var schemeTable = []schemeRule{
	{focus: []string{"MOBNAME_BENCH"}, tag: "BENCH"},
	{focus: []string{"MOBNAME_ANVIL"}, tag: "BSANVIL"},
	{focus: []string{"MOBNAME_LAB"}, tag: "LAB"},
	{focus: []string{"MOBNAME_CHEST", "Chest"}, tag: "CHESTSMALL"},
	{focus: []string{"MOBNAME_CHESTBIG"}, tag: "CHESTBIG"},
	{focus: []string{"MOBNAME_FORGE"}, tag: "BSFIRE"},
	{focus: []string{"MOBNAME_BOOKSBOARD"}, tag: "BOOK"},
	{focus: []string{"MOBNAME_BBQ_SCAV", "MOBNAME_BARBQ_SCAV"}, tag: "BARBQ"},
	{focus: []string{"MOBNAME_SWITCH", "MOBNAME_ADDON_ORNAMENTSWITCH"}, tag: "TURNSWITCH"},
	{focus: []string{"MOBNAME_CHAIR"}, tag: "CHAIR"},
	{focus: []string{"MOBNAME_THRONE", "MOBNAME_SEAT", "MOBNAME_ARMCHAIR"}, tag: "THRONE"},
	{focus: []string{"MOBNAME_CAULDRON"}, tag: "CAULDRON"},
	{focus: []string{"MOBNAME_ORE"}, tag: "ORE"},
	{focus: []string{"MOBNAME_GRINDSTONE"}, tag: "BSSHARP"},
	{focus: []string{"MOBNAME_INNOS"}, tag: "INNOS"},
	{focus: []string{"MOBNAME_ADDON_IDOL"}, tag: "INNOS"},
	{focus: []string{"MOBNAME_STOVE"}, tag: "STOVE"},
	{focus: []string{"MOBNAME_BED"}, tag: "BEDHIGH"},
	{focus: []string{"MOBNAME_BUCKET"}, tag: "BSCOOL"},
	{focus: []string{"MOBNAME_RUNEMAKER"}, tag: "RMAKER"},
	{focus: []string{"MOBNAME_WATERPIPE"}, tag: "SMOKE"},
	{focus: []string{"MOBNAME_SAW"}, tag: "BAUMSAEGE"},
	{focus: []string{"MOBNAME_PAN"}, tag: "PAN"},
	{focus: []string{"MOBNAME_DOOR", "MOBNAME_Door"}, tag: "DOOR"},
	{focus: []string{"MOBNAME_WINEMAKER"}, tag: "HERB"},
	{focus: []string{"MOBNAME_BOOKSTAND"}, tag: "BOOK"},
	{visual: "TREASURE_ADDON_01.ASC", tag: "TREASURE"},
	{visual: "LEVER_1_OC.MDS", tag: "LEVER"},
	{visual: "REPAIR_PLANK.ASC", tag: "REPAIR"},
	{visual: "BENCH_NW_CITY_02.ASC", tag: "BENCH"},
	{visual: "PAN_OC.MDS", tag: "PAN"},
}

// Scheme classifies an object by focus name, falling back to its visual.
// Returns "" for unknown objects.
func Scheme(focus, visual string) string {
	for _, r := range schemeTable {
		if r.visual != "" {
			if r.visual == visual {
				return r.tag
			}
			continue
		}
		for _, f := range r.focus {
			if f == focus {
				return r.tag
			}
		}
	}
	return ""
}

// BodyState is the posture a character takes while using an object.
type BodyState uint8

const (
	BodyNone BodyState = iota
	BodySit
	BodyLie
	BodyClimb
)

var bodyStateByScheme = map[string]BodyState{
	"BENCH":   BodySit,
	"CHAIR":   BodySit,
	"GROUND":  BodySit,
	"THRONE":  BodySit,
	"BED":     BodyLie,
	"BEDHIGH": BodyLie,
	"BEDLOW":  BodyLie,
	"CLIMB":   BodyClimb,
	"LADDER":  BodyClimb,
	"RANKE":   BodyClimb,
}

// releaseRule marks kinds whose interaction ends by itself at full engagement.
type releaseRule struct {
	kind              model.VobKind
	onlyWithoutScript bool
}

// autoRelease: content authors used the door class for some beds, so doors
// only auto-release when no state function is configured.
var autoRelease = []releaseRule{
	{kind: model.VobMobDoor, onlyWithoutScript: true},
	{kind: model.VobMobSwitch},
}

func releasesOnFullEngagement(kind model.VobKind, stateFunc string) bool {
	for _, r := range autoRelease {
		if r.kind != kind {
			continue
		}
		return !r.onlyWithoutScript || stateFunc == ""
	}
	return false
}
