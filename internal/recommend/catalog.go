package recommend

import "github.com/kalgen-innolab/dnacare/internal/scorer"

// AdviceID is a stable, language-neutral advice key. Display text lives in
// the locale catalog.
type AdviceID string

// ProductKey identifies a follow-up product.
type ProductKey string

const (
	ProductGenmeLife    ProductKey = "genme_life"
	ProductStrokeGenme  ProductKey = "strokegenme"
	ProductMCU          ProductKey = "mcu"
	ProductKalscanner69 ProductKey = "kalscanner69"
	ProductSpotMas      ProductKey = "spotmas"
	// ProductGeneralScreening is the MCU package offered as a general check.
	ProductGeneralScreening ProductKey = "general_screening"
)

// Products lists every product key.
var Products = []ProductKey{
	ProductGenmeLife, ProductStrokeGenme, ProductMCU,
	ProductKalscanner69, ProductSpotMas, ProductGeneralScreening,
}

const (
	AdviceMetabolicGenmeLife   AdviceID = "metabolic.genme_life"
	AdviceMetabolicActivity    AdviceID = "metabolic.activity"
	AdviceMetabolicStress      AdviceID = "metabolic.stress"
	AdviceMetabolicSleep       AdviceID = "metabolic.sleep"
	AdviceMetabolicCheckup     AdviceID = "metabolic.checkup"
	AdviceMetabolicWeight      AdviceID = "metabolic.weight"
	AdviceMetabolicSmoking     AdviceID = "metabolic.smoking"
	AdviceCVDStrokeGenme       AdviceID = "cvd.strokegenme"
	AdviceCVDLipidPanel        AdviceID = "cvd.lipid_panel"
	AdviceCVDBloodPressure     AdviceID = "cvd.blood_pressure"
	AdviceCVDAerobic           AdviceID = "cvd.aerobic"
	AdviceCVDCheckup           AdviceID = "cvd.checkup"
	AdviceCVDSmoking           AdviceID = "cvd.smoking"
	AdviceCVDStress            AdviceID = "cvd.stress"
	AdviceDiabetesLabTests     AdviceID = "diabetes.lab_tests"
	AdviceDiabetesMonitor      AdviceID = "diabetes.monitor_glucose"
	AdviceDiabetesDiet         AdviceID = "diabetes.diet"
	AdviceDiabetesActivity     AdviceID = "diabetes.activity"
	AdviceDiabetesCheckup      AdviceID = "diabetes.checkup"
	AdviceDiabetesWeight       AdviceID = "diabetes.weight"
	AdviceDiabetesSymptoms     AdviceID = "diabetes.symptoms"
	AdviceCancerSpotMas        AdviceID = "cancer.spotmas"
	AdviceCancerKalScreen      AdviceID = "cancer.kalscreen"
	AdviceCancerScreening      AdviceID = "cancer.screening"
	AdviceCancerLifestyle      AdviceID = "cancer.lifestyle"
	AdviceCancerCheckup        AdviceID = "cancer.checkup"
	AdviceCancerSmoking        AdviceID = "cancer.smoking"
	AdviceCancerAlcohol        AdviceID = "cancer.alcohol"
	AdviceFollowProvider       AdviceID = "common.follow_provider"
	AdviceMonitorHealthy       AdviceID = "common.monitor_healthy_habits"
	AdviceFollowUpProvider     AdviceID = "common.follow_up_provider"
	AdviceMonitorCheckups      AdviceID = "common.monitor_checkups"
	AdviceMaintainMedications  AdviceID = "common.maintain_medications"
	AdviceGeneralMaintain      AdviceID = "general.maintain_habits"
	AdviceGeneralCheckups      AdviceID = "general.regular_checkups"
	AdviceGeneralStayActive    AdviceID = "general.stay_active"
	AdviceGeneralMonitorChange AdviceID = "general.monitor_changes"
)

// extra is advice appended when a secondary feature crosses its gate.
type extra struct {
	id   AdviceID
	gate gate
}

type gate int

const (
	gateOverweight gate = iota
	gateSmoking
	gateStress
	gateSymptoms
	gateAlcohol
)

type categoryAdvice struct {
	base    []AdviceID
	extras  []extra
	product ProductKey
}

var catalog = map[scorer.Category]categoryAdvice{
	scorer.CategoryMetabolic: {
		base: []AdviceID{
			AdviceMetabolicGenmeLife, AdviceMetabolicActivity, AdviceMetabolicStress,
			AdviceMetabolicSleep, AdviceMetabolicCheckup,
		},
		extras: []extra{
			{AdviceMetabolicWeight, gateOverweight},
			{AdviceMetabolicSmoking, gateSmoking},
		},
		product: ProductGenmeLife,
	},
	scorer.CategoryCVD: {
		base: []AdviceID{
			AdviceCVDStrokeGenme, AdviceCVDLipidPanel, AdviceCVDBloodPressure,
			AdviceCVDAerobic, AdviceCVDCheckup,
		},
		extras: []extra{
			{AdviceCVDSmoking, gateSmoking},
			{AdviceCVDStress, gateStress},
		},
		product: ProductStrokeGenme,
	},
	scorer.CategoryDiabetes: {
		base: []AdviceID{
			AdviceDiabetesLabTests, AdviceDiabetesMonitor, AdviceDiabetesDiet,
			AdviceDiabetesActivity, AdviceDiabetesCheckup,
		},
		extras: []extra{
			{AdviceDiabetesWeight, gateOverweight},
			{AdviceDiabetesSymptoms, gateSymptoms},
		},
		product: ProductMCU,
	},
	scorer.CategoryCancer: {
		base: []AdviceID{
			AdviceCancerSpotMas, AdviceCancerKalScreen, AdviceCancerScreening,
			AdviceCancerLifestyle, AdviceCancerCheckup,
		},
		extras: []extra{
			{AdviceCancerSmoking, gateSmoking},
			{AdviceCancerAlcohol, gateAlcohol},
		},
		product: ProductKalscanner69,
	},
}

var (
	monitorAdvice       = []AdviceID{AdviceFollowProvider, AdviceMonitorHealthy, AdviceFollowUpProvider}
	notApplicableAdvice = []AdviceID{AdviceFollowProvider, AdviceMonitorCheckups, AdviceMaintainMedications}
	generalAdvice       = []AdviceID{AdviceGeneralMaintain, AdviceGeneralCheckups, AdviceGeneralStayActive, AdviceGeneralMonitorChange}
)

// AllAdvice returns every advice ID the generator can emit. The locale
// catalog is checked against it.
func AllAdvice() []AdviceID {
	var out []AdviceID
	for _, c := range scorer.Categories {
		a := catalog[c]
		out = append(out, a.base...)
		for _, e := range a.extras {
			out = append(out, e.id)
		}
	}
	out = append(out, AdviceFollowProvider, AdviceMonitorHealthy, AdviceFollowUpProvider,
		AdviceMonitorCheckups, AdviceMaintainMedications)
	return append(out, generalAdvice...)
}
