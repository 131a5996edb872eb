package sgf

// PropertyType - закрытый список стандартных свойств SGF.
// PropertyTypeUnknown обозначает пользовательское свойство, различаемое по имени.
type PropertyType int

const (
	PropertyTypeUnknown PropertyType = iota

	// Move
	PropertyTypeB
	PropertyTypeKO
	PropertyTypeMN
	PropertyTypeW

	// Setup
	PropertyTypeAB
	PropertyTypeAE
	PropertyTypeAW
	PropertyTypePL

	// Node annotation
	PropertyTypeC
	PropertyTypeDM
	PropertyTypeGB
	PropertyTypeGW
	PropertyTypeHO
	PropertyTypeN
	PropertyTypeUC
	PropertyTypeV

	// Move annotation
	PropertyTypeBM
	PropertyTypeDO
	PropertyTypeIT
	PropertyTypeTE

	// Markup
	PropertyTypeAR
	PropertyTypeCR
	PropertyTypeDD
	PropertyTypeLB
	PropertyTypeLN
	PropertyTypeMA
	PropertyTypeSL
	PropertyTypeSQ
	PropertyTypeTR

	// Root
	PropertyTypeAP
	PropertyTypeCA
	PropertyTypeFF
	PropertyTypeGM
	PropertyTypeST
	PropertyTypeSZ

	// Game info
	PropertyTypeAN
	PropertyTypeBR
	PropertyTypeBT
	PropertyTypeCP
	PropertyTypeDT
	PropertyTypeEV
	PropertyTypeGN
	PropertyTypeGC
	PropertyTypeON
	PropertyTypeOT
	PropertyTypePB
	PropertyTypePC
	PropertyTypePW
	PropertyTypeRE
	PropertyTypeRO
	PropertyTypeRU
	PropertyTypeSO
	PropertyTypeTM
	PropertyTypeUS
	PropertyTypeWR
	PropertyTypeWT

	// Timing
	PropertyTypeBL
	PropertyTypeOB
	PropertyTypeOW
	PropertyTypeWL

	// Miscellaneous
	PropertyTypeFG
	PropertyTypePM
	PropertyTypeVW

	// Go
	PropertyTypeHA
	PropertyTypeKM
	PropertyTypeTB
	PropertyTypeTW

	// Lines of Action
	PropertyTypeAS
	PropertyTypeIP
	PropertyTypeIY
	PropertyTypeSE
	PropertyTypeSU

	// Backgammon
	PropertyTypeCO
	PropertyTypeCV
	PropertyTypeDI
	PropertyTypeMI

	// Hex
	PropertyTypeIS

	// Amazons
	PropertyTypeAA

	propertyTypeCount
)

// PropertyCategory - категория свойства по стандарту SGF.
type PropertyCategory int

const (
	PropertyCategoryNone PropertyCategory = iota
	PropertyCategoryRoot
	PropertyCategoryGameInfo
	PropertyCategoryMove
	PropertyCategorySetup
	PropertyCategoryNodeAnnotation
	PropertyCategoryMoveAnnotation
	PropertyCategoryMarkup
	PropertyCategoryTiming
	PropertyCategoryInheritable
	PropertyCategoryMiscellaneous
)

var propertyCategoryNames = [...]string{
	PropertyCategoryNone:           "none",
	PropertyCategoryRoot:           "root",
	PropertyCategoryGameInfo:       "game-info",
	PropertyCategoryMove:           "move",
	PropertyCategorySetup:          "setup",
	PropertyCategoryNodeAnnotation: "node-annotation",
	PropertyCategoryMoveAnnotation: "move-annotation",
	PropertyCategoryMarkup:         "markup",
	PropertyCategoryTiming:         "timing",
	PropertyCategoryInheritable:    "inheritable",
	PropertyCategoryMiscellaneous:  "miscellaneous",
}

func (c PropertyCategory) String() string {
	if c < 0 || int(c) >= len(propertyCategoryNames) {
		return "none"
	}
	return propertyCategoryNames[c]
}

type propertyMetaInfo struct {
	id       string
	category PropertyCategory
	// gameType != GameTypeUnknown означает, что свойство определено
	// только для этой игры.
	gameType GameType
}

var propertyMetaInfos = [propertyTypeCount]propertyMetaInfo{
	PropertyTypeUnknown: {"", PropertyCategoryNone, GameTypeUnknown},

	PropertyTypeB:  {"B", PropertyCategoryMove, GameTypeUnknown},
	PropertyTypeKO: {"KO", PropertyCategoryMove, GameTypeUnknown},
	PropertyTypeMN: {"MN", PropertyCategoryMove, GameTypeUnknown},
	PropertyTypeW:  {"W", PropertyCategoryMove, GameTypeUnknown},

	PropertyTypeAB: {"AB", PropertyCategorySetup, GameTypeUnknown},
	PropertyTypeAE: {"AE", PropertyCategorySetup, GameTypeUnknown},
	PropertyTypeAW: {"AW", PropertyCategorySetup, GameTypeUnknown},
	PropertyTypePL: {"PL", PropertyCategorySetup, GameTypeUnknown},

	PropertyTypeC:  {"C", PropertyCategoryNodeAnnotation, GameTypeUnknown},
	PropertyTypeDM: {"DM", PropertyCategoryNodeAnnotation, GameTypeUnknown},
	PropertyTypeGB: {"GB", PropertyCategoryNodeAnnotation, GameTypeUnknown},
	PropertyTypeGW: {"GW", PropertyCategoryNodeAnnotation, GameTypeUnknown},
	PropertyTypeHO: {"HO", PropertyCategoryNodeAnnotation, GameTypeUnknown},
	PropertyTypeN:  {"N", PropertyCategoryNodeAnnotation, GameTypeUnknown},
	PropertyTypeUC: {"UC", PropertyCategoryNodeAnnotation, GameTypeUnknown},
	PropertyTypeV:  {"V", PropertyCategoryNodeAnnotation, GameTypeUnknown},

	PropertyTypeBM: {"BM", PropertyCategoryMoveAnnotation, GameTypeUnknown},
	PropertyTypeDO: {"DO", PropertyCategoryMoveAnnotation, GameTypeUnknown},
	PropertyTypeIT: {"IT", PropertyCategoryMoveAnnotation, GameTypeUnknown},
	PropertyTypeTE: {"TE", PropertyCategoryMoveAnnotation, GameTypeUnknown},

	PropertyTypeAR: {"AR", PropertyCategoryMarkup, GameTypeUnknown},
	PropertyTypeCR: {"CR", PropertyCategoryMarkup, GameTypeUnknown},
	PropertyTypeDD: {"DD", PropertyCategoryInheritable, GameTypeUnknown},
	PropertyTypeLB: {"LB", PropertyCategoryMarkup, GameTypeUnknown},
	PropertyTypeLN: {"LN", PropertyCategoryMarkup, GameTypeUnknown},
	PropertyTypeMA: {"MA", PropertyCategoryMarkup, GameTypeUnknown},
	PropertyTypeSL: {"SL", PropertyCategoryMarkup, GameTypeUnknown},
	PropertyTypeSQ: {"SQ", PropertyCategoryMarkup, GameTypeUnknown},
	PropertyTypeTR: {"TR", PropertyCategoryMarkup, GameTypeUnknown},

	PropertyTypeAP: {"AP", PropertyCategoryRoot, GameTypeUnknown},
	PropertyTypeCA: {"CA", PropertyCategoryRoot, GameTypeUnknown},
	PropertyTypeFF: {"FF", PropertyCategoryRoot, GameTypeUnknown},
	PropertyTypeGM: {"GM", PropertyCategoryRoot, GameTypeUnknown},
	PropertyTypeST: {"ST", PropertyCategoryRoot, GameTypeUnknown},
	PropertyTypeSZ: {"SZ", PropertyCategoryRoot, GameTypeUnknown},

	PropertyTypeAN: {"AN", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeBR: {"BR", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeBT: {"BT", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeCP: {"CP", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeDT: {"DT", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeEV: {"EV", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeGN: {"GN", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeGC: {"GC", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeON: {"ON", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeOT: {"OT", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypePB: {"PB", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypePC: {"PC", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypePW: {"PW", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeRE: {"RE", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeRO: {"RO", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeRU: {"RU", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeSO: {"SO", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeTM: {"TM", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeUS: {"US", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeWR: {"WR", PropertyCategoryGameInfo, GameTypeUnknown},
	PropertyTypeWT: {"WT", PropertyCategoryGameInfo, GameTypeUnknown},

	PropertyTypeBL: {"BL", PropertyCategoryTiming, GameTypeUnknown},
	PropertyTypeOB: {"OB", PropertyCategoryTiming, GameTypeUnknown},
	PropertyTypeOW: {"OW", PropertyCategoryTiming, GameTypeUnknown},
	PropertyTypeWL: {"WL", PropertyCategoryTiming, GameTypeUnknown},

	PropertyTypeFG: {"FG", PropertyCategoryMiscellaneous, GameTypeUnknown},
	PropertyTypePM: {"PM", PropertyCategoryInheritable, GameTypeUnknown},
	PropertyTypeVW: {"VW", PropertyCategoryInheritable, GameTypeUnknown},

	PropertyTypeHA: {"HA", PropertyCategoryGameInfo, GameTypeGo},
	PropertyTypeKM: {"KM", PropertyCategoryGameInfo, GameTypeGo},
	PropertyTypeTB: {"TB", PropertyCategoryMiscellaneous, GameTypeGo},
	PropertyTypeTW: {"TW", PropertyCategoryMiscellaneous, GameTypeGo},

	PropertyTypeAS: {"AS", PropertyCategoryMiscellaneous, GameTypeLinesOfAction},
	PropertyTypeIP: {"IP", PropertyCategoryGameInfo, GameTypeLinesOfAction},
	PropertyTypeIY: {"IY", PropertyCategoryGameInfo, GameTypeLinesOfAction},
	PropertyTypeSE: {"SE", PropertyCategoryMarkup, GameTypeUnknown},
	PropertyTypeSU: {"SU", PropertyCategoryGameInfo, GameTypeLinesOfAction},

	PropertyTypeCO: {"CO", PropertyCategorySetup, GameTypeBackgammon},
	PropertyTypeCV: {"CV", PropertyCategorySetup, GameTypeBackgammon},
	PropertyTypeDI: {"DI", PropertyCategorySetup, GameTypeBackgammon},
	PropertyTypeMI: {"MI", PropertyCategoryGameInfo, GameTypeBackgammon},

	PropertyTypeIS: {"IS", PropertyCategoryRoot, GameTypeHex},

	PropertyTypeAA: {"AA", PropertyCategorySetup, GameTypeAmazons},
}

var propertyTypesByID = func() map[string]PropertyType {
	m := make(map[string]PropertyType, len(propertyMetaInfos))
	for i := PropertyTypeUnknown + 1; i < propertyTypeCount; i++ {
		m[propertyMetaInfos[i].id] = i
	}
	return m
}()

// PropertyTypeFromID возвращает тип по идентификатору SGF (например "B" или "SZ").
// Неизвестные идентификаторы дают PropertyTypeUnknown.
func PropertyTypeFromID(id string) PropertyType {
	if t, ok := propertyTypesByID[id]; ok {
		return t
	}
	return PropertyTypeUnknown
}

func (t PropertyType) isValid() bool {
	return t >= PropertyTypeUnknown && t < propertyTypeCount
}

// ID - идентификатор свойства в SGF; пустая строка для PropertyTypeUnknown.
func (t PropertyType) ID() string {
	if !t.isValid() {
		return ""
	}
	return propertyMetaInfos[t].id
}

func (t PropertyType) String() string {
	if t == PropertyTypeUnknown || !t.isValid() {
		return "unknown"
	}
	return propertyMetaInfos[t].id
}

func (t PropertyType) Category() PropertyCategory {
	if !t.isValid() {
		return PropertyCategoryNone
	}
	return propertyMetaInfos[t].category
}

// DefiningGameType возвращает игру, для которой определено свойство,
// или GameTypeUnknown, если свойство общее для всех игр.
func (t PropertyType) DefiningGameType() GameType {
	if !t.isValid() {
		return GameTypeUnknown
	}
	return propertyMetaInfos[t].gameType
}

// IsGameSpecific сообщает, привязано ли свойство к конкретной игре.
func (t PropertyType) IsGameSpecific() bool {
	return t.DefiningGameType() != GameTypeUnknown
}
