package cv

// Terms of the PSI-MS vocabulary that the readers and the ranking code
// look at. All other terms are carried along without interpretation.
const (
	ScanNumbers              TermID = "MS:1001115" // scan number(s)
	ScanStartTime            TermID = "MS:1000016"
	RetentionTime            TermID = "MS:1000894"
	ElutionTime              TermID = "MS:1000826"
	RetentionTimeDeprecated  TermID = "MS:1001114"
	MascotGenericFormat      TermID = "MS:1001062" // MGF file format
	MultiplePeakListNativeID TermID = "MS:1000774"
	MSGFRawScore             TermID = "MS:1002049"
	MSGFDeNovoScore          TermID = "MS:1002050"
	MSGFSpecEValue           TermID = "MS:1002052"
	MSGFEValue               TermID = "MS:1002053"
	MSGFQValue               TermID = "MS:1002054"
	MSGFPepQValue            TermID = "MS:1002055"
	ProteinDescription       TermID = "MS:1001088"
	DecoyDBAccessionRegexp   TermID = "MS:1001283"

	UnitMinute TermID = "UO:0000031"
	UnitSecond TermID = "UO:0000010"
)
