package locale

import (
	r "github.com/kalgen-innolab/dnacare/internal/recommend"
	"github.com/kalgen-innolab/dnacare/internal/scorer"
)

var indonesian = &texts{
	messages: map[string]string{
		MsgTitle:              "Prediksi Risiko Penyakit",
		MsgResultHeader:       "Penilaian Risiko Kesehatan Anda",
		MsgResultSubtext:      "Skor risiko dikategorikan sebagai: Rendah (< %.0f%%), Sedang (%.0f-%.0f%%), Tinggi (> %.0f%%)",
		MsgRecommendHeader:    "Rekomendasi Kesehatan Pribadi Anda",
		MsgNotApplicable:      "Tingkat Risiko: N/A (Kondisi sudah ada)",
		MsgLowRiskSuccess:     "Kabar baik! Semua tingkat risiko Anda dalam kategori rendah. Terus pertahankan gaya hidup sehat Anda!",
		MsgGeneralMaintenance: "Pemeliharaan Kesehatan Umum:",
		MsgMandatoryFields:    "Harap isi bidang wajib berikut: %s",
		MsgSaveError:          "Terjadi masalah saat menyimpan data Anda. Silakan coba lagi.",
		MsgInternalError:      "Terjadi kesalahan. Silakan coba lagi.",
		MsgMoreInformation:    "Informasi Lebih Lanjut",
	},
	categories: map[scorer.Category]string{
		scorer.CategoryMetabolic: "Risiko Metabolik & Gaya Hidup",
		scorer.CategoryCVD:       "Risiko Penyakit Jantung & Stroke",
		scorer.CategoryDiabetes:  "Risiko Diabetes",
		scorer.CategoryCancer:    "Risiko Kanker",
		r.CategoryGeneral:        "Pemeliharaan Kesehatan Umum",
	},
	tiers: map[scorer.Tier]string{
		scorer.TierLow:      "Tingkat Risiko: Rendah",
		scorer.TierModerate: "Tingkat Risiko: Sedang",
		scorer.TierHigh:     "Tingkat Risiko: Tinggi",
	},
	advice: map[r.AdviceID]string{
		r.AdviceMetabolicGenmeLife: "Ikuti rekomendasi kesehatan Genme Life untuk optimasi metabolik",
		r.AdviceMetabolicActivity:  "Tingkatkan aktivitas fisik hingga 150 menit olahraga sedang per minggu",
		r.AdviceMetabolicStress:    "Lakukan manajemen stres seperti meditasi atau yoga",
		r.AdviceMetabolicSleep:     "Tidur teratur selama 7–9 jam per malam",
		r.AdviceMetabolicCheckup:   "Pemeriksaan Medis Direkomendasikan",
		r.AdviceMetabolicWeight:    "Fokus pada pengelolaan berat badan yang bertahap dan berkelanjutan",
		r.AdviceMetabolicSmoking:   "Pertimbangkan program berhenti merokok",

		r.AdviceCVDStrokeGenme:   "Ikuti panduan Strokegenme untuk kesehatan jantung",
		r.AdviceCVDLipidPanel:    "Jadwalkan pemeriksaan darah panel lipid secara rutin",
		r.AdviceCVDBloodPressure: "Pantau tekanan darah secara teratur",
		r.AdviceCVDAerobic:       "Tingkatkan frekuensi olahraga aerobik",
		r.AdviceCVDCheckup:       "Pemeriksaan Medis Direkomendasikan",
		r.AdviceCVDSmoking:       "Berhenti merokok sangat penting untuk kesehatan jantung",
		r.AdviceCVDStress:        "Kelola stres dengan pendekatan yang melindungi kesehatan jantung",

		r.AdviceDiabetesLabTests: "Segera jadwalkan pemeriksaan medis dengan tes HbA1c dan glukosa puasa",
		r.AdviceDiabetesMonitor:  "Pantau kadar gula darah secara rutin",
		r.AdviceDiabetesDiet:     "Ikuti panduan diet pencegahan diabetes",
		r.AdviceDiabetesActivity: "Tingkatkan aktivitas fisik untuk meningkatkan sensitivitas insulin",
		r.AdviceDiabetesCheckup:  "Pemeriksaan Medis Direkomendasikan",
		r.AdviceDiabetesWeight:   "Pengelolaan berat badan penting untuk pencegahan diabetes",
		r.AdviceDiabetesSymptoms: "Diskusikan gejala diabetes dengan tenaga medis sesegera mungkin",

		r.AdviceCancerSpotMas:   "Pertimbangkan pemeriksaan SpotMas untuk deteksi dini kanker",
		r.AdviceCancerKalScreen: "Jadwalkan panel tes KalScreen 69",
		r.AdviceCancerScreening: "Lakukan skrining kanker secara rutin sesuai usia",
		r.AdviceCancerLifestyle: "Terapkan gaya hidup pencegahan kanker",
		r.AdviceCancerCheckup:   "Pemeriksaan Medis Direkomendasikan",
		r.AdviceCancerSmoking:   "Berhenti merokok dapat secara signifikan menurunkan risiko kanker",
		r.AdviceCancerAlcohol:   "Pertimbangkan untuk mengurangi konsumsi alkohol",

		r.AdviceFollowProvider:      "Ikuti rencana pengobatan dari penyedia layanan kesehatan Anda",
		r.AdviceMonitorHealthy:      "Pemantauan rutin dan kebiasaan sehat",
		r.AdviceFollowUpProvider:    "Tindak lanjut dengan penyedia layanan kesehatan",
		r.AdviceMonitorCheckups:     "Pemantauan dan pemeriksaan rutin",
		r.AdviceMaintainMedications: "Lanjutkan obat yang diresepkan",

		r.AdviceGeneralMaintain:      "Lanjutkan kebiasaan sehat Anda saat ini",
		r.AdviceGeneralCheckups:      "Pemeriksaan kesehatan preventif secara rutin",
		r.AdviceGeneralStayActive:    "Tetap aktif dan jaga nutrisi seimbang",
		r.AdviceGeneralMonitorChange: "Pantau perubahan pada status kesehatan Anda",
	},
	products: map[r.ProductKey]string{
		r.ProductGenmeLife:        "GENME Life – Kesehatan Metabolik",
		r.ProductStrokeGenme:      "StrokeGENME – Pencegahan Penyakit Jantung",
		r.ProductMCU:              "MCU – Pemeriksaan Kesehatan",
		r.ProductKalscanner69:     "Kalscanner69 – Deteksi Kanker",
		r.ProductSpotMas:          "SpotMas – Skrining Kanker Risiko Tinggi",
		r.ProductGeneralScreening: "Pemeriksaan Kesehatan Umum",
	},
	fields: map[string]string{
		"name":                      "Nama",
		"age":                       "Usia",
		"sex":                       "Jenis Kelamin",
		"height":                    "Tinggi Badan (cm)",
		"weight":                    "Berat Badan (kg)",
		"waist_circumference":       "Lingkar Pinggang (cm)",
		"activity_level":            "Tingkat Aktivitas Pekerjaan",
		"exercise_frequency":        "Frekuensi olahraga",
		"duration":                  "Durasi olahraga",
		"intensity":                 "Intensitas olahraga",
		"sleep_hours":               "Rata-rata jam tidur per malam",
		"stress_level":              "Tingkat stres",
		"smoking":                   "Status merokok",
		"total_cholesterol":         "Kadar Kolesterol Total",
		"blood_pressure_medication": "Penggunaan obat penurun tekanan darah",
		"hba1c":                     "Kadar HbA1c",
		"fasting_glucose":           "Kadar glukosa puasa",
		"conditions":                "Kondisi kesehatan saat ini",
		"diabetes_history":          "Riwayat keluarga diabetes",
		"cancer_history":            "Riwayat keluarga kanker",
		"cvd_history":               "Riwayat keluarga penyakit jantung",
	},
}
