package sgf

// Константы дескрипторов создаются один раз при загрузке пакета
// и дальше только читаются, поэтому безопасны для конкурентного чтения.
var (
	DescriptorNone       = newBasicDescriptor(ValueTypeNone)
	DescriptorNumber     = newBasicDescriptor(ValueTypeNumber)
	DescriptorReal       = newBasicDescriptor(ValueTypeReal)
	DescriptorDouble     = newBasicDescriptor(ValueTypeDouble)
	DescriptorColor      = newBasicDescriptor(ValueTypeColor)
	DescriptorSimpleText = newBasicDescriptor(ValueTypeSimpleText)
	DescriptorText       = newBasicDescriptor(ValueTypeText)
	DescriptorPoint      = newBasicDescriptor(ValueTypePoint)
	DescriptorMove       = newBasicDescriptor(ValueTypeMove)
	DescriptorStone      = newBasicDescriptor(ValueTypeStone)
	DescriptorUnknown    = newBasicDescriptor(ValueTypeUnknown)

	DescriptorComposedNumberAndNumber         = newComposedDescriptor(DescriptorNumber, DescriptorNumber)
	DescriptorComposedSimpleTextAndSimpleText = newComposedDescriptor(DescriptorSimpleText, DescriptorSimpleText)
	DescriptorComposedNumberAndSimpleText     = newComposedDescriptor(DescriptorNumber, DescriptorSimpleText)
	DescriptorComposedPointAndPoint           = newComposedDescriptor(DescriptorPoint, DescriptorPoint)
	DescriptorComposedPointAndSimpleText      = newComposedDescriptor(DescriptorPoint, DescriptorSimpleText)

	DescriptorListOfPoint                           = newListDescriptor(DescriptorPoint)
	DescriptorListOfStone                           = newListDescriptor(DescriptorStone)
	DescriptorListOfComposedPointAndPoint           = newListDescriptor(DescriptorComposedPointAndPoint)
	DescriptorListOfComposedPointAndSimpleText      = newListDescriptor(DescriptorComposedPointAndSimpleText)
	DescriptorListOfComposedSimpleTextAndSimpleText = newListDescriptor(DescriptorComposedSimpleTextAndSimpleText)

	DescriptorElistOfPoint = newElistDescriptor(DescriptorListOfPoint)

	DescriptorNumberOrComposedNumberAndNumber   = newDualDescriptor(DescriptorNumber, DescriptorComposedNumberAndNumber)
	DescriptorNoneOrComposedNumberAndSimpleText = newDualDescriptor(DescriptorNone, DescriptorComposedNumberAndSimpleText)
)

var commonDescriptors = [propertyTypeCount]ValueTypeDescriptor{
	PropertyTypeUnknown: DescriptorUnknown,

	PropertyTypeB:  DescriptorMove,
	PropertyTypeKO: DescriptorNone,
	PropertyTypeMN: DescriptorNumber,
	PropertyTypeW:  DescriptorMove,

	PropertyTypeAB: DescriptorListOfStone,
	PropertyTypeAE: DescriptorListOfPoint,
	PropertyTypeAW: DescriptorListOfStone,
	PropertyTypePL: DescriptorColor,

	PropertyTypeC:  DescriptorText,
	PropertyTypeDM: DescriptorDouble,
	PropertyTypeGB: DescriptorDouble,
	PropertyTypeGW: DescriptorDouble,
	PropertyTypeHO: DescriptorDouble,
	PropertyTypeN:  DescriptorSimpleText,
	PropertyTypeUC: DescriptorDouble,
	PropertyTypeV:  DescriptorReal,

	PropertyTypeBM: DescriptorDouble,
	PropertyTypeDO: DescriptorNone,
	PropertyTypeIT: DescriptorNone,
	PropertyTypeTE: DescriptorDouble,

	PropertyTypeAR: DescriptorListOfComposedPointAndPoint,
	PropertyTypeCR: DescriptorListOfPoint,
	PropertyTypeDD: DescriptorElistOfPoint,
	PropertyTypeLB: DescriptorListOfComposedPointAndSimpleText,
	PropertyTypeLN: DescriptorListOfComposedPointAndPoint,
	PropertyTypeMA: DescriptorListOfPoint,
	PropertyTypeSL: DescriptorListOfPoint,
	PropertyTypeSQ: DescriptorListOfPoint,
	PropertyTypeTR: DescriptorListOfPoint,

	PropertyTypeAP: DescriptorComposedSimpleTextAndSimpleText,
	PropertyTypeCA: DescriptorSimpleText,
	PropertyTypeFF: DescriptorNumber,
	PropertyTypeGM: DescriptorNumber,
	PropertyTypeST: DescriptorNumber,
	PropertyTypeSZ: DescriptorNumberOrComposedNumberAndNumber,

	PropertyTypeAN: DescriptorSimpleText,
	PropertyTypeBR: DescriptorSimpleText,
	PropertyTypeBT: DescriptorSimpleText,
	PropertyTypeCP: DescriptorSimpleText,
	PropertyTypeDT: DescriptorSimpleText,
	PropertyTypeEV: DescriptorSimpleText,
	PropertyTypeGN: DescriptorSimpleText,
	PropertyTypeGC: DescriptorText,
	PropertyTypeON: DescriptorSimpleText,
	PropertyTypeOT: DescriptorSimpleText,
	PropertyTypePB: DescriptorSimpleText,
	PropertyTypePC: DescriptorSimpleText,
	PropertyTypePW: DescriptorSimpleText,
	PropertyTypeRE: DescriptorSimpleText,
	PropertyTypeRO: DescriptorSimpleText,
	PropertyTypeRU: DescriptorSimpleText,
	PropertyTypeSO: DescriptorSimpleText,
	PropertyTypeTM: DescriptorReal,
	PropertyTypeUS: DescriptorSimpleText,
	PropertyTypeWR: DescriptorSimpleText,
	PropertyTypeWT: DescriptorSimpleText,

	PropertyTypeBL: DescriptorReal,
	PropertyTypeOB: DescriptorNumber,
	PropertyTypeOW: DescriptorNumber,
	PropertyTypeWL: DescriptorReal,

	PropertyTypeFG: DescriptorNoneOrComposedNumberAndSimpleText,
	PropertyTypePM: DescriptorNumber,
	PropertyTypeVW: DescriptorElistOfPoint,

	PropertyTypeHA: DescriptorNumber,
	PropertyTypeKM: DescriptorReal,
	PropertyTypeTB: DescriptorElistOfPoint,
	PropertyTypeTW: DescriptorElistOfPoint,

	PropertyTypeAS: DescriptorSimpleText,
	PropertyTypeIP: DescriptorSimpleText,
	PropertyTypeIY: DescriptorSimpleText,
	PropertyTypeSE: DescriptorListOfPoint,
	PropertyTypeSU: DescriptorSimpleText,

	PropertyTypeCO: DescriptorSimpleText,
	PropertyTypeCV: DescriptorNumber,
	PropertyTypeDI: DescriptorNumber,
	PropertyTypeMI: DescriptorListOfComposedSimpleTextAndSimpleText,

	PropertyTypeIS: DescriptorListOfComposedSimpleTextAndSimpleText,

	PropertyTypeAA: DescriptorListOfPoint,
}

// DescriptorFor - полная функция (тип свойства, игра) -> дескриптор.
func DescriptorFor(propertyType PropertyType, gameType GameType) ValueTypeDescriptor {
	if !propertyType.isValid() {
		return DescriptorUnknown
	}

	switch propertyType {
	case PropertyTypeSE:
		// В Lines of Action SE отмечает одну точку.
		if gameType == GameTypeLinesOfAction {
			return DescriptorPoint
		}
		return DescriptorListOfPoint
	}

	if defining := propertyType.DefiningGameType(); defining != GameTypeUnknown && defining != gameType {
		return DescriptorUnknown
	}
	return commonDescriptors[propertyType]
}
