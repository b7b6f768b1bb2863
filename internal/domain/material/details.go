package material

// Details are the sourcing, certification and processing attributes recorded
// for a batch. They are free text as entered by the operator and are carried
// through storage and reports without interpretation, except the two weights
// which reports sum when they parse as numbers.
type Details struct {
	// Raw wood (logs)
	LogDiameter       string `json:"logDiameter,omitempty" yaml:"logDiameter,omitempty"`
	LogLength         string `json:"logLength,omitempty" yaml:"logLength,omitempty"`
	LogGrade          string `json:"logGrade,omitempty" yaml:"logGrade,omitempty"`
	EstimatedWeightKg string `json:"estimatedWeightKg,omitempty" yaml:"estimatedWeightKg,omitempty"`
	DefectDescription string `json:"defectDescription,omitempty" yaml:"defectDescription,omitempty"`

	// Processed lumber
	Dimensions        string `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	LumberGrade       string `json:"lumberGrade,omitempty" yaml:"lumberGrade,omitempty"`
	SurfaceFinish     string `json:"surfaceFinish,omitempty" yaml:"surfaceFinish,omitempty" validate:"omitempty,enum=surface_finish"`
	MoistureContent   string `json:"moistureContent,omitempty" yaml:"moistureContent,omitempty"`
	Treatment         string `json:"treatment,omitempty" yaml:"treatment,omitempty"`
	ProcessedWeightKg string `json:"processedWeightKg,omitempty" yaml:"processedWeightKg,omitempty"`

	// Wood origin
	CountryOfHarvest             string `json:"countryOfHarvest,omitempty" yaml:"countryOfHarvest,omitempty"`
	RegionAndForestName          string `json:"regionAndForestName,omitempty" yaml:"regionAndForestName,omitempty"`
	GPSCoordinatesOrFMU          string `json:"gpsCoordinatesOrFMU,omitempty" yaml:"gpsCoordinatesOrFMU,omitempty"`
	ForestOwnership              string `json:"forestOwnership,omitempty" yaml:"forestOwnership,omitempty" validate:"omitempty,enum=forest_ownership"`
	ForestType                   string `json:"forestType,omitempty" yaml:"forestType,omitempty" validate:"omitempty,enum=forest_type"`
	HarvestDateOrPeriod          string `json:"harvestDateOrPeriod,omitempty" yaml:"harvestDateOrPeriod,omitempty"`
	TreeSpeciesScientific        string `json:"treeSpeciesScientific,omitempty" yaml:"treeSpeciesScientific,omitempty"`
	TreeSpeciesCommon            string `json:"treeSpeciesCommon,omitempty" yaml:"treeSpeciesCommon,omitempty"`
	EstimatedVolumePerSpeciesRWE string `json:"estimatedVolumePerSpeciesRWE,omitempty" yaml:"estimatedVolumePerSpeciesRWE,omitempty"`

	// Legal documentation
	LoggingPermitOrLicense          string `json:"loggingPermitOrLicense,omitempty" yaml:"loggingPermitOrLicense,omitempty"`
	LandTenureAndUseRights          string `json:"landTenureAndUseRights,omitempty" yaml:"landTenureAndUseRights,omitempty"`
	ChainOfCustodyRecords           string `json:"chainOfCustodyRecords,omitempty" yaml:"chainOfCustodyRecords,omitempty"`
	TransportPermits                string `json:"transportPermits,omitempty" yaml:"transportPermits,omitempty"`
	DueDiligenceRecordsSubSuppliers string `json:"dueDiligenceRecordsSubSuppliers,omitempty" yaml:"dueDiligenceRecordsSubSuppliers,omitempty"`

	// Certification
	ForestCertificationScheme   string `json:"forestCertificationScheme,omitempty" yaml:"forestCertificationScheme,omitempty"`
	CertificationNumber         string `json:"certificationNumber,omitempty" yaml:"certificationNumber,omitempty"`
	CertificationScope          string `json:"certificationScope,omitempty" yaml:"certificationScope,omitempty"`
	CertificationValidityPeriod string `json:"certificationValidityPeriod,omitempty" yaml:"certificationValidityPeriod,omitempty"`
	ProductGroupAndClaimType    string `json:"productGroupAndClaimType,omitempty" yaml:"productGroupAndClaimType,omitempty"`
	CoCCertificateCopies        string `json:"cocCertificateCopies,omitempty" yaml:"cocCertificateCopies,omitempty"`
	CertificationAuditSummaries string `json:"certificationAuditSummaries,omitempty" yaml:"certificationAuditSummaries,omitempty"`

	// Batch traceability
	InputOutputReconciliation string `json:"inputOutputReconciliation,omitempty" yaml:"inputOutputReconciliation,omitempty"`
	BatchLevelTrackingInfo    string `json:"batchLevelTrackingInfo,omitempty" yaml:"batchLevelTrackingInfo,omitempty"`
	RawMaterialLedgerInfo     string `json:"rawMaterialLedgerInfo,omitempty" yaml:"rawMaterialLedgerInfo,omitempty"`

	// Sustainability
	RecycledContentPercentage     string `json:"recycledContentPercentage,omitempty" yaml:"recycledContentPercentage,omitempty"`
	CarbonFootprintData           string `json:"carbonFootprintData,omitempty" yaml:"carbonFootprintData,omitempty"`
	ResourceEfficiencyOrWasteData string `json:"resourceEfficiencyOrWasteData,omitempty" yaml:"resourceEfficiencyOrWasteData,omitempty"`
	ForestManagementPlanDetails   string `json:"forestManagementPlanDetails,omitempty" yaml:"forestManagementPlanDetails,omitempty"`

	// Delivery and manufacturing
	FinalProcessingLocation           string `json:"finalProcessingLocation,omitempty" yaml:"finalProcessingLocation,omitempty"`
	IkeaProductType                   string `json:"ikeaProductType,omitempty" yaml:"ikeaProductType,omitempty"`
	IkeaProductNamesOrArticles        string `json:"ikeaProductNamesOrArticles,omitempty" yaml:"ikeaProductNamesOrArticles,omitempty"`
	PackingListTraceableToRawMaterial string `json:"packingListTraceableToRawMaterial,omitempty" yaml:"packingListTraceableToRawMaterial,omitempty"`

	// Provenance verification
	WorldForestIDParticipation       string `json:"worldForestIDParticipation,omitempty" yaml:"worldForestIDParticipation,omitempty"`
	ForensicTestData                 string `json:"forensicTestData,omitempty" yaml:"forensicTestData,omitempty"`
	GPSOrBlockchainTraceabilityTools string `json:"gpsOrBlockchainTraceabilityTools,omitempty" yaml:"gpsOrBlockchainTraceabilityTools,omitempty"`
}
