package sgf

import "strconv"

// GameType соответствует значению свойства GM.
type GameType int

const (
	GameTypeUnknown GameType = 0

	GameTypeGo                   GameType = 1
	GameTypeOthello              GameType = 2
	GameTypeChess                GameType = 3
	GameTypeGomokuAndRenju       GameType = 4
	GameTypeNineMensMorris       GameType = 5
	GameTypeBackgammon           GameType = 6
	GameTypeChineseChess         GameType = 7
	GameTypeShogi                GameType = 8
	GameTypeLinesOfAction        GameType = 9
	GameTypeAtaxx                GameType = 10
	GameTypeHex                  GameType = 11
	GameTypeJungle               GameType = 12
	GameTypeNeutron              GameType = 13
	GameTypePhilosophersFootball GameType = 14
	GameTypeQuadrature           GameType = 15
	GameTypeTrax                 GameType = 16
	GameTypeTantrix              GameType = 17
	GameTypeAmazons              GameType = 18
	GameTypeOcti                 GameType = 19
	GameTypeGess                 GameType = 20
	GameTypeTwixt                GameType = 21
	GameTypeZertz                GameType = 22
	GameTypePlateau              GameType = 23
	GameTypeYinsh                GameType = 24
	GameTypePunct                GameType = 25
	GameTypeGobblet              GameType = 26
	GameTypeHive                 GameType = 27
	GameTypeExxit                GameType = 28
	GameTypeHnefatal             GameType = 29
	GameTypeKuba                 GameType = 30
	GameTypeTripples             GameType = 31
	GameTypeChase                GameType = 32
	GameTypeTumblingDown         GameType = 33
	GameTypeSahara               GameType = 34
	GameTypeByte                 GameType = 35
	GameTypeFocus                GameType = 36
	GameTypeDvonn                GameType = 37
	GameTypeTamsk                GameType = 38
	GameTypeGipf                 GameType = 39
	GameTypeKropki               GameType = 40

	maxGameType = GameTypeKropki
)

// DefaultGameType используется, когда в корне нет GM.
const DefaultGameType = GameTypeGo

var gameTypeNames = map[GameType]string{
	GameTypeGo:                   "Go",
	GameTypeOthello:              "Othello",
	GameTypeChess:                "Chess",
	GameTypeGomokuAndRenju:       "Gomoku+Renju",
	GameTypeNineMensMorris:       "Nine Men's Morris",
	GameTypeBackgammon:           "Backgammon",
	GameTypeChineseChess:         "Chinese chess",
	GameTypeShogi:                "Shogi",
	GameTypeLinesOfAction:        "Lines of Action",
	GameTypeAtaxx:                "Ataxx",
	GameTypeHex:                  "Hex",
	GameTypeJungle:               "Jungle",
	GameTypeNeutron:              "Neutron",
	GameTypePhilosophersFootball: "Philosopher's Football",
	GameTypeQuadrature:           "Quadrature",
	GameTypeTrax:                 "Trax",
	GameTypeTantrix:              "Tantrix",
	GameTypeAmazons:              "Amazons",
	GameTypeOcti:                 "Octi",
	GameTypeGess:                 "Gess",
	GameTypeTwixt:                "Twixt",
	GameTypeZertz:                "Zertz",
	GameTypePlateau:              "Plateau",
	GameTypeYinsh:                "Yinsh",
	GameTypePunct:                "Punct",
	GameTypeGobblet:              "Gobblet",
	GameTypeHive:                 "Hive",
	GameTypeExxit:                "Exxit",
	GameTypeHnefatal:             "Hnefatal",
	GameTypeKuba:                 "Kuba",
	GameTypeTripples:             "Tripples",
	GameTypeChase:                "Chase",
	GameTypeTumblingDown:         "Tumbling Down",
	GameTypeSahara:               "Sahara",
	GameTypeByte:                 "Byte",
	GameTypeFocus:                "Focus",
	GameTypeDvonn:                "Dvonn",
	GameTypeTamsk:                "Tamsk",
	GameTypeGipf:                 "Gipf",
	GameTypeKropki:               "Kropki",
}

func (g GameType) String() string {
	if name, ok := gameTypeNames[g]; ok {
		return name
	}
	return "Unknown"
}

// GameTypeFromNumber переводит число из GM в GameType.
// Числа вне стандартного диапазона дают GameTypeUnknown.
func GameTypeFromNumber(number int64) GameType {
	if number < int64(GameTypeGo) || number > int64(maxGameType) {
		return GameTypeUnknown
	}
	return GameType(number)
}

// BoardSize - размер доски из SZ. Нулевое значение означает «нет размера».
type BoardSize struct {
	Columns int `json:"columns" bson:"columns"`
	Rows    int `json:"rows" bson:"rows"`
}

var (
	BoardSizeNone         = BoardSize{}
	BoardSizeDefaultGo    = BoardSize{Columns: 19, Rows: 19}
	BoardSizeDefaultChess = BoardSize{Columns: 8, Rows: 8}
)

// DefaultBoardSize возвращает размер доски по умолчанию для игры,
// если SZ не задан. Стандарт определяет его только для Go и шахмат.
func DefaultBoardSize(gameType GameType) BoardSize {
	switch gameType {
	case GameTypeGo:
		return BoardSizeDefaultGo
	case GameTypeChess:
		return BoardSizeDefaultChess
	default:
		return BoardSizeNone
	}
}

func (b BoardSize) IsNone() bool {
	return b.Columns <= 0 || b.Rows <= 0
}

func (b BoardSize) IsSquare() bool {
	return !b.IsNone() && b.Columns == b.Rows
}

// IsValid проверяет ограничения стандарта: для Go от 1 до 52 по каждой оси.
func (b BoardSize) IsValid(gameType GameType) bool {
	if b.IsNone() {
		return false
	}
	if gameType == GameTypeGo {
		return b.Columns <= 52 && b.Rows <= 52
	}
	return true
}

func (b BoardSize) String() string {
	if b.IsNone() {
		return "none"
	}
	if b.IsSquare() {
		return strconv.Itoa(b.Columns)
	}
	return strconv.Itoa(b.Columns) + ":" + strconv.Itoa(b.Rows)
}
