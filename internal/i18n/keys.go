package i18n

// Key identifies one translated string. Only the constants below are valid
// keys; lookups never take raw strings.
type Key string

const (
	KeyNavHome           Key = "navHome"
	KeyNavServices       Key = "navServices"
	KeyNavAbout          Key = "navAbout"
	KeyNavReviews        Key = "navReviews"
	KeyNavContact        Key = "navContact"
	KeyNavBookNow        Key = "navBookNow"
	KeyNavStudioName     Key = "navStudioName"
	KeyNavLanguageToggle Key = "navLanguageToggle"

	KeyHeroTitle    Key = "heroTitle"
	KeyHeroSubtitle Key = "heroSubtitle"
	KeyHeroButton   Key = "heroButton"

	KeyPromoBadge        Key = "promoBadge"
	KeyPromoBannerTitle  Key = "promoBannerTitle"
	KeyPromoBannerDesc   Key = "promoBannerDesc"
	KeyPromoBannerButton Key = "promoBannerButton"

	KeyServicesTitle     Key = "servicesTitle"
	KeyBookThisTreatment Key = "bookThisTreatment"

	KeyServiceHifuTitle     Key = "serviceHifuTitle"
	KeyServiceHifuDesc      Key = "serviceHifuDesc"
	KeyServiceHifuPrice     Key = "serviceHifuPrice"
	KeyServiceHifuOldPrice  Key = "serviceHifuOldPrice"
	KeyServiceMtsTitle      Key = "serviceMtsTitle"
	KeyServiceMtsDesc       Key = "serviceMtsDesc"
	KeyServiceMtsPrice      Key = "serviceMtsPrice"
	KeyServiceRfLiftTitle   Key = "serviceRfLiftTitle"
	KeyServiceRfLiftDesc    Key = "serviceRfLiftDesc"
	KeyServiceRfLiftPrice   Key = "serviceRfLiftPrice"
	KeyServiceAcneTitle     Key = "serviceAcneTitle"
	KeyServiceAcneDesc      Key = "serviceAcneDesc"
	KeyServiceAcnePrice     Key = "serviceAcnePrice"
	KeyServicePureGlowTitle Key = "servicePureGlowTitle"
	KeyServicePureGlowDesc  Key = "servicePureGlowDesc"
	KeyServicePureGlowPrice Key = "servicePureGlowPrice"
	KeyServiceDetoxTitle    Key = "serviceDetoxTitle"
	KeyServiceDetoxDesc     Key = "serviceDetoxDesc"
	KeyServiceDetoxPrice    Key = "serviceDetoxPrice"

	KeyAboutTitle Key = "aboutTitle"
	KeyAboutP     Key = "aboutP"

	KeyReviewsTitle Key = "reviewsTitle"

	KeyContactTitle         Key = "contactTitle"
	KeyContactStudioName    Key = "contactStudioName"
	KeyContactAddress       Key = "contactAddress"
	KeyContactHoursNote     Key = "contactHoursNote"
	KeyContactWhatsappLabel Key = "contactWhatsappLabel"

	KeyBookingTitle             Key = "bookingTitle"
	KeyFormName                 Key = "formName"
	KeyFormNamePlaceholder      Key = "formNamePlaceholder"
	KeyFormPhone                Key = "formPhone"
	KeyFormPhonePlaceholder     Key = "formPhonePlaceholder"
	KeyFormService              Key = "formService"
	KeyFormServiceOptionDefault Key = "formServiceOptionDefault"
	KeyFormServiceOptionNotSure Key = "formServiceOptionNotSure"
	KeyFormDate                 Key = "formDate"
	KeyFormTime                 Key = "formTime"
	KeyFormTimeMorning          Key = "formTimeMorning"
	KeyFormTimeAfternoon        Key = "formTimeAfternoon"
	KeyFormTimeEvening          Key = "formTimeEvening"
	KeyFormTimeOptionMorning    Key = "formTimeOptionMorning"
	KeyFormTimeOptionAfternoon  Key = "formTimeOptionAfternoon"
	KeyFormTimeOptionEvening    Key = "formTimeOptionEvening"
	KeyFormSubmitButton         Key = "formSubmitButton"
	KeyFormFieldRequired        Key = "formFieldRequired"

	KeyFeedbackProcessing      Key = "feedbackProcessing"
	KeyFeedbackSpreadsheetSent Key = "feedbackSpreadsheetSent"
	KeyFeedbackWhatsAppReady   Key = "feedbackWhatsAppReady"

	KeyAlertRequestSent Key = "alertRequestSent"
	KeyAlertFormError   Key = "alertFormError"
	KeyModalOkButton    Key = "modalOkButton"

	KeyAIAdvisorTitle     Key = "aiAdvisorTitle"
	KeyAIAdvisorSubtitle  Key = "aiAdvisorSubtitle"
	KeyAIWelcomeMessage   Key = "aiWelcomeMessage"
	KeyAIWelcomeExample   Key = "aiWelcomeExample"
	KeyAIInputPlaceholder Key = "aiInputPlaceholder"
	KeyAISendButton       Key = "aiSendButton"
	KeyAIError            Key = "aiError"

	KeyFooterTagline Key = "footerTagline"
	KeyFooterAddress Key = "footerAddress"
	KeyWhatsappChat  Key = "whatsappChat"
)

// AllKeys lists every valid key. Dictionary files are checked against it.
var AllKeys = []Key{
	KeyNavHome, KeyNavServices, KeyNavAbout, KeyNavReviews, KeyNavContact,
	KeyNavBookNow, KeyNavStudioName, KeyNavLanguageToggle,
	KeyHeroTitle, KeyHeroSubtitle, KeyHeroButton,
	KeyPromoBadge, KeyPromoBannerTitle, KeyPromoBannerDesc, KeyPromoBannerButton,
	KeyServicesTitle, KeyBookThisTreatment,
	KeyServiceHifuTitle, KeyServiceHifuDesc, KeyServiceHifuPrice, KeyServiceHifuOldPrice,
	KeyServiceMtsTitle, KeyServiceMtsDesc, KeyServiceMtsPrice,
	KeyServiceRfLiftTitle, KeyServiceRfLiftDesc, KeyServiceRfLiftPrice,
	KeyServiceAcneTitle, KeyServiceAcneDesc, KeyServiceAcnePrice,
	KeyServicePureGlowTitle, KeyServicePureGlowDesc, KeyServicePureGlowPrice,
	KeyServiceDetoxTitle, KeyServiceDetoxDesc, KeyServiceDetoxPrice,
	KeyAboutTitle, KeyAboutP,
	KeyReviewsTitle,
	KeyContactTitle, KeyContactStudioName, KeyContactAddress, KeyContactHoursNote, KeyContactWhatsappLabel,
	KeyBookingTitle, KeyFormName, KeyFormNamePlaceholder, KeyFormPhone, KeyFormPhonePlaceholder,
	KeyFormService, KeyFormServiceOptionDefault, KeyFormServiceOptionNotSure, KeyFormDate, KeyFormTime,
	KeyFormTimeMorning, KeyFormTimeAfternoon, KeyFormTimeEvening,
	KeyFormTimeOptionMorning, KeyFormTimeOptionAfternoon, KeyFormTimeOptionEvening,
	KeyFormSubmitButton, KeyFormFieldRequired,
	KeyFeedbackProcessing, KeyFeedbackSpreadsheetSent, KeyFeedbackWhatsAppReady,
	KeyAlertRequestSent, KeyAlertFormError, KeyModalOkButton,
	KeyAIAdvisorTitle, KeyAIAdvisorSubtitle, KeyAIWelcomeMessage, KeyAIWelcomeExample,
	KeyAIInputPlaceholder, KeyAISendButton, KeyAIError,
	KeyFooterTagline, KeyFooterAddress, KeyWhatsappChat,
}

var knownKeys = func() map[Key]struct{} {
	m := make(map[Key]struct{}, len(AllKeys))
	for _, k := range AllKeys {
		m[k] = struct{}{}
	}
	return m
}()

// Valid reports whether k is one of the declared keys.
func (k Key) Valid() bool {
	_, ok := knownKeys[k]
	return ok
}
