package locale

import (
	"net/url"

	"github.com/kalgen-innolab/dnacare/internal/recommend"
)

// ContactPhone is the customer relations WhatsApp number.
const ContactPhone = "6281510068080"

const waIntro = "Halo CR KALGen Innolab!, Setelah saya menggunakan DNA CARE Calculator, saya memiliki "

var contactLinks = map[recommend.ProductKey]string{
	recommend.ProductGenmeLife:        whatsApp(waIntro + "risiko tinggi atau menengah untuk penyakit metabolik dan gaya hidup. Apakah bisa diinfokan lebih lanjut mengenai tes Genme Life?"),
	recommend.ProductMCU:              whatsApp(waIntro + "risiko tinggi atau menengah untuk penyakit diabetes. Apakah bisa diinfokan lebih lanjut mengenai tes Medical Check Up?"),
	recommend.ProductStrokeGenme:      whatsApp(waIntro + "risiko tinggi atau menengah untuk penyakit kardiovaskular. Apakah bisa diinfokan lebih lanjut mengenai tes StrokeGENME?"),
	recommend.ProductKalscanner69:     whatsApp(waIntro + "risiko menengah untuk penyakit kanker. Apakah bisa diinfokan lebih lanjut mengenai tes KalScreen?"),
	recommend.ProductSpotMas:          whatsApp(waIntro + "risiko tinggi untuk penyakit kanker. Apakah bisa diinfokan lebih lanjut mengenai tes SpotMas?"),
	recommend.ProductGeneralScreening: whatsApp(waIntro + "risiko tinggi atau menengah untuk penyakit metabolik dan gaya hidup. Apakah bisa diinfokan lebih lanjut mengenai tes Genme Life?"),
}

func whatsApp(text string) string {
	q := url.Values{}
	q.Set("phone", ContactPhone)
	q.Set("text", text)
	return "https://api.whatsapp.com/send?" + q.Encode()
}
