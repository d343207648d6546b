package locale

import (
	r "github.com/kalgen-innolab/dnacare/internal/recommend"
	"github.com/kalgen-innolab/dnacare/internal/scorer"
)

var english = &texts{
	messages: map[string]string{
		MsgTitle:              "Disease Risk Prediction",
		MsgResultHeader:       "Your Health Risk Assessment",
		MsgResultSubtext:      "Risk scores are categorized as: Low (< %.0f%%), Moderate (%.0f-%.0f%%), High (> %.0f%%)",
		MsgRecommendHeader:    "Your Personalized Health Recommendations",
		MsgNotApplicable:      "Risk Level: N/A (Condition present)",
		MsgLowRiskSuccess:     "Great news! All your risk levels are in the low range. Keep maintaining your healthy lifestyle!",
		MsgGeneralMaintenance: "General Health Maintenance:",
		MsgMandatoryFields:    "Please fill in the following mandatory fields: %s",
		MsgSaveError:          "There was a problem saving your data. Please try again.",
		MsgInternalError:      "Something went wrong. Please try again.",
		MsgMoreInformation:    "More Information",
	},
	categories: map[scorer.Category]string{
		scorer.CategoryMetabolic: "Metabolic & Lifestyle Risk",
		scorer.CategoryCVD:       "CVD & Stroke Risk",
		scorer.CategoryDiabetes:  "Diabetes Risk",
		scorer.CategoryCancer:    "Cancer Risk",
		r.CategoryGeneral:        "General Health Maintenance",
	},
	tiers: map[scorer.Tier]string{
		scorer.TierLow:      "Risk Level: Low",
		scorer.TierModerate: "Risk Level: Moderate",
		scorer.TierHigh:     "Risk Level: High",
	},
	advice: map[r.AdviceID]string{
		r.AdviceMetabolicGenmeLife: "Follow Genme Life health recommendations for metabolic optimization",
		r.AdviceMetabolicActivity:  "Increase physical activity to 150 minutes of moderate exercise per week",
		r.AdviceMetabolicStress:    "Implement stress management techniques like meditation or yoga",
		r.AdviceMetabolicSleep:     "Maintain consistent sleep schedule for 7-9 hours per night",
		r.AdviceMetabolicCheckup:   "Medical Check-Up Recommended",
		r.AdviceMetabolicWeight:    "Focus on gradual, sustainable weight management",
		r.AdviceMetabolicSmoking:   "Consider smoking cessation programs",

		r.AdviceCVDStrokeGenme:   "Follow Strokegenme guidance for cardiovascular health",
		r.AdviceCVDLipidPanel:    "Schedule regular lipid panel blood checkups",
		r.AdviceCVDBloodPressure: "Monitor blood pressure regularly",
		r.AdviceCVDAerobic:       "Increase aerobic exercise frequency",
		r.AdviceCVDCheckup:       "Medical Check-Up Recommended",
		r.AdviceCVDSmoking:       "Smoking cessation is critical for heart health",
		r.AdviceCVDStress:        "Implement cardiovascular-protective stress management",

		r.AdviceDiabetesLabTests: "Schedule immediate medical checkup with HbA1c and fasting glucose tests",
		r.AdviceDiabetesMonitor:  "Monitor blood glucose levels regularly",
		r.AdviceDiabetesDiet:     "Follow diabetes prevention dietary guidelines",
		r.AdviceDiabetesActivity: "Increase physical activity to improve insulin sensitivity",
		r.AdviceDiabetesCheckup:  "Medical Check-Up Recommended",
		r.AdviceDiabetesWeight:   "Weight management is crucial for diabetes prevention",
		r.AdviceDiabetesSymptoms: "Discuss diabetes symptoms with healthcare provider immediately",

		r.AdviceCancerSpotMas:   "Consider SpotMas screening for early cancer detection",
		r.AdviceCancerKalScreen: "Schedule KalScreen 69 testing panels",
		r.AdviceCancerScreening: "Maintain regular cancer screening as per age guidelines",
		r.AdviceCancerLifestyle: "Adopt cancer-preventive lifestyle modifications",
		r.AdviceCancerCheckup:   "Medical Check-Up Recommended",
		r.AdviceCancerSmoking:   "Smoking cessation significantly reduces cancer risk",
		r.AdviceCancerAlcohol:   "Consider reducing alcohol consumption",

		r.AdviceFollowProvider:      "Follow your healthcare provider's treatment plan",
		r.AdviceMonitorHealthy:      "Regular monitoring and healthy habits",
		r.AdviceFollowUpProvider:    "Follow-up with healthcare provider",
		r.AdviceMonitorCheckups:     "Regular monitoring and check-ups",
		r.AdviceMaintainMedications: "Maintain prescribed medications",

		r.AdviceGeneralMaintain:      "Continue your current healthy habits",
		r.AdviceGeneralCheckups:      "Regular preventive health check-ups",
		r.AdviceGeneralStayActive:    "Stay active and maintain balanced nutrition",
		r.AdviceGeneralMonitorChange: "Monitor any changes in your health status",
	},
	products: map[r.ProductKey]string{
		r.ProductGenmeLife:        "GENME Life - Metabolic Health",
		r.ProductStrokeGenme:      "StrokeGENME - CVD Prevention",
		r.ProductMCU:              "MCU Health Screening",
		r.ProductKalscanner69:     "Kalscanner69 - Cancer Screening",
		r.ProductSpotMas:          "SpotMas - High Risk Cancer Screening",
		r.ProductGeneralScreening: "General Health Screening",
	},
	fields: map[string]string{
		"name":                      "Name",
		"age":                       "Age",
		"sex":                       "Sex",
		"height":                    "Height (cm)",
		"weight":                    "Weight (kg)",
		"waist_circumference":       "Waist Circumference (cm)",
		"activity_level":            "Work Activity Level",
		"exercise_frequency":        "Exercise frequency",
		"duration":                  "Exercise duration",
		"intensity":                 "Exercise intensity",
		"sleep_hours":               "Average hours of sleep per night",
		"stress_level":              "Overall stress level",
		"smoking":                   "Smoking status",
		"total_cholesterol":         "Total Cholesterol Level",
		"blood_pressure_medication": "Use of blood pressure lowering medications",
		"hba1c":                     "HbA1c level",
		"fasting_glucose":           "Fasting glucose level",
		"conditions":                "Current health conditions",
		"diabetes_history":          "Family history of diabetes",
		"cancer_history":            "Family history of cancer",
		"cvd_history":               "Family history of cardiovascular disease",
	},
}
