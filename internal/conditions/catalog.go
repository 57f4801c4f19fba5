// Package conditions holds the static catalog of skin-condition
// descriptions shown to callers alongside a prediction. The catalog covers
// the classes the hosted model was trained on and is never mutated after
// process start.
package conditions

var descriptions = map[string]string{
	"Actinic Keratosis": "A rough, scaly patch caused by years of sun exposure. " +
		"Use broad-spectrum sunscreen daily and have the lesion examined, as a small share can progress to squamous cell carcinoma.",
	"Basal Cell Carcinoma": "The most common form of skin cancer, usually appearing as a pearly bump or a flat flesh-colored lesion. " +
		"It grows slowly and rarely spreads, but requires prompt evaluation by a dermatologist.",
	"Dermato Fibroma": "A firm, benign nodule most often found on the legs. " +
		"It is harmless and needs no treatment unless it becomes painful or changes in appearance.",
	"Melanoma": "The most serious type of skin cancer, often developing from or resembling a mole. " +
		"Asymmetry, irregular borders, color variation, or growth warrant urgent dermatological assessment.",
	"Nevus": "A common mole formed by clusters of pigment cells. " +
		"Most are harmless; monitor for changes in size, shape, or color and report them to a clinician.",
	"Pigmented Benign Keratosis": "A non-cancerous pigmented growth that can mimic melanoma in photographs. " +
		"No treatment is required, but unusual or changing lesions should be checked in person.",
	"Seborrheic Keratosis": "A waxy, stuck-on-looking benign growth that appears with age. " +
		"It can be removed for comfort or cosmetic reasons but poses no health risk.",
	"Squamous Cell Carcinoma": "A skin cancer that appears as a firm red nodule or a flat, crusted lesion. " +
		"It can spread if untreated, so timely medical evaluation is important.",
	"Vascular Lesion": "A blood-vessel growth such as a cherry angioma or hemangioma. " +
		"Most are benign; sudden bleeding or rapid growth should be reviewed by a doctor.",
	"Eczema": "An inflammatory condition causing dry, itchy, irritated skin. " +
		"Moisturize with fragrance-free emollients, avoid known triggers, and consider over-the-counter hydrocortisone for flare-ups.",
	"Atopic Dermatitis": "A chronic form of eczema common in people with allergies or asthma. " +
		"Daily moisturizing, lukewarm showers, and trigger avoidance help; persistent flares merit prescription therapy.",
	"Psoriasis": "An autoimmune condition producing thick, scaly plaques. " +
		"Moisturizers and medicated creams reduce scaling; widespread disease is managed with light or systemic therapy.",
	"Tinea Ringworm Candidiasis": "A fungal infection producing ring-shaped or moist red patches. " +
		"Keep the area clean and dry and apply an over-the-counter antifungal; see a doctor if it spreads.",
	"Warts Molluscum": "Viral skin growths that are contagious through direct contact. " +
		"Many resolve on their own; salicylic-acid treatments or cryotherapy speed removal.",
	"Acne/Pimples": "Blocked and inflamed pores, common on the face, chest, and back. " +
		"Gentle cleansing with benzoyl peroxide or salicylic acid helps; persistent or scarring acne deserves prescription care.",
}

// Describe returns the care-advice text for a predicted class.
func Describe(label string) (string, bool) {
	description, ok := descriptions[label]
	return description, ok
}

// Labels returns the set of classes the catalog knows about.
func Labels() []string {
	labels := make([]string, 0, len(descriptions))
	for label := range descriptions {
		labels = append(labels, label)
	}
	return labels
}
