package domain

// Item is a catalog template. Types carries behavior tags such as "BAIT" or "TOOL".
type Item struct {
	ID           int      `json:"item_id"`
	InternalName string   `json:"internal_name"`
	DisplayName  string   `json:"display_name"`
	Types        []string `json:"types"`
}

// Item type tags.
const (
	ItemTypeBait = "BAIT"
	ItemTypeTool = "TOOL"
)

// HasType reports whether the item carries the given type tag.
func (i *Item) HasType(tag string) bool {
	for _, t := range i.Types {
		if t == tag {
			return true
		}
	}
	return false
}

// Rarity is the output tier stamped on granted item stacks.
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)
