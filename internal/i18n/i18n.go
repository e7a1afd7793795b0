// Package i18n maps a language code to the fixed phrase table the widget
// shell renders, plus a right-to-left flag.
package i18n

import (
	"sort"
	"strings"

	"github.com/chatterloop/widget/internal/domain/models"
)

// Phrases is the widget chrome copy for one language. Conversation content
// (welcome, fallback, offline messages) comes from the chatbot config, not
// from here.
type Phrases struct {
	InputPlaceholder string `json:"inputPlaceholder"`
	Send             string `json:"send"`
	Typing           string `json:"typing"`
	PreChatTitle     string `json:"preChatTitle"`
	NameLabel        string `json:"nameLabel"`
	PhoneLabel       string `json:"phoneLabel"`
	EmailLabel       string `json:"emailLabel"`
	StartChat        string `json:"startChat"`
	LeadFormTitle    string `json:"leadFormTitle"`
	Submit           string `json:"submit"`
	NoThanks         string `json:"noThanks"`
	Offline          string `json:"offline"`
	PoweredBy        string `json:"poweredBy"`
	NameRequired     string `json:"nameRequired"`
	EmailRequired    string `json:"emailRequired"`
	PhoneInvalid     string `json:"phoneInvalid"`
}

// Locale is a resolved language: its phrases and text direction.
type Locale struct {
	Code    string  `json:"code"`
	RTL     bool    `json:"rtl"`
	Phrases Phrases `json:"phrases"`
}

var rtlLanguages = map[string]bool{"ar": true, "he": true}

var tables = map[string]Phrases{
	"en": {
		InputPlaceholder: "Type a message...",
		Send:             "Send",
		Typing:           "Typing...",
		PreChatTitle:     "Before we start",
		NameLabel:        "Your name",
		PhoneLabel:       "Phone number",
		EmailLabel:       "Email",
		StartChat:        "Start chat",
		LeadFormTitle:    "Leave your contact details",
		Submit:           "Submit",
		NoThanks:         "No thanks",
		Offline:          "We're currently offline",
		PoweredBy:        "Powered by Chatterloop",
		NameRequired:     "Please enter your name",
		EmailRequired:    "Please enter your email",
		PhoneInvalid:     "Please enter a valid phone number",
	},
	"es": {
		InputPlaceholder: "Escribe un mensaje...",
		Send:             "Enviar",
		Typing:           "Escribiendo...",
		PreChatTitle:     "Antes de empezar",
		NameLabel:        "Tu nombre",
		PhoneLabel:       "Número de teléfono",
		EmailLabel:       "Correo electrónico",
		StartChat:        "Iniciar chat",
		LeadFormTitle:    "Déjanos tus datos de contacto",
		Submit:           "Enviar",
		NoThanks:         "No, gracias",
		Offline:          "Ahora mismo no estamos disponibles",
		PoweredBy:        "Con la tecnología de Chatterloop",
		NameRequired:     "Por favor, introduce tu nombre",
		EmailRequired:    "Por favor, introduce tu correo",
		PhoneInvalid:     "Por favor, introduce un teléfono válido",
	},
	"fr": {
		InputPlaceholder: "Écrivez un message...",
		Send:             "Envoyer",
		Typing:           "En train d'écrire...",
		PreChatTitle:     "Avant de commencer",
		NameLabel:        "Votre nom",
		PhoneLabel:       "Numéro de téléphone",
		EmailLabel:       "E-mail",
		StartChat:        "Démarrer le chat",
		LeadFormTitle:    "Laissez vos coordonnées",
		Submit:           "Envoyer",
		NoThanks:         "Non merci",
		Offline:          "Nous sommes actuellement hors ligne",
		PoweredBy:        "Propulsé par Chatterloop",
		NameRequired:     "Veuillez saisir votre nom",
		EmailRequired:    "Veuillez saisir votre e-mail",
		PhoneInvalid:     "Veuillez saisir un numéro valide",
	},
	"de": {
		InputPlaceholder: "Nachricht eingeben...",
		Send:             "Senden",
		Typing:           "Schreibt...",
		PreChatTitle:     "Bevor wir anfangen",
		NameLabel:        "Ihr Name",
		PhoneLabel:       "Telefonnummer",
		EmailLabel:       "E-Mail",
		StartChat:        "Chat starten",
		LeadFormTitle:    "Hinterlassen Sie Ihre Kontaktdaten",
		Submit:           "Absenden",
		NoThanks:         "Nein danke",
		Offline:          "Wir sind derzeit offline",
		PoweredBy:        "Bereitgestellt von Chatterloop",
		NameRequired:     "Bitte geben Sie Ihren Namen ein",
		EmailRequired:    "Bitte geben Sie Ihre E-Mail ein",
		PhoneInvalid:     "Bitte geben Sie eine gültige Nummer ein",
	},
	"pt": {
		InputPlaceholder: "Digite uma mensagem...",
		Send:             "Enviar",
		Typing:           "Digitando...",
		PreChatTitle:     "Antes de começar",
		NameLabel:        "Seu nome",
		PhoneLabel:       "Número de telefone",
		EmailLabel:       "E-mail",
		StartChat:        "Iniciar conversa",
		LeadFormTitle:    "Deixe seus dados de contato",
		Submit:           "Enviar",
		NoThanks:         "Não, obrigado",
		Offline:          "Estamos offline no momento",
		PoweredBy:        "Desenvolvido por Chatterloop",
		NameRequired:     "Por favor, informe seu nome",
		EmailRequired:    "Por favor, informe seu e-mail",
		PhoneInvalid:     "Por favor, informe um telefone válido",
	},
	"ar": {
		InputPlaceholder: "اكتب رسالة...",
		Send:             "إرسال",
		Typing:           "يكتب...",
		PreChatTitle:     "قبل أن نبدأ",
		NameLabel:        "اسمك",
		PhoneLabel:       "رقم الهاتف",
		EmailLabel:       "البريد الإلكتروني",
		StartChat:        "ابدأ المحادثة",
		LeadFormTitle:    "اترك بيانات التواصل",
		Submit:           "إرسال",
		NoThanks:         "لا، شكراً",
		Offline:          "نحن غير متاحين حالياً",
		PoweredBy:        "مدعوم من Chatterloop",
		NameRequired:     "يرجى إدخال اسمك",
		EmailRequired:    "يرجى إدخال بريدك الإلكتروني",
		PhoneInvalid:     "يرجى إدخال رقم هاتف صحيح",
	},
	"he": {
		InputPlaceholder: "הקלד הודעה...",
		Send:             "שלח",
		Typing:           "מקליד...",
		PreChatTitle:     "לפני שנתחיל",
		NameLabel:        "השם שלך",
		PhoneLabel:       "מספר טלפון",
		EmailLabel:       "אימייל",
		StartChat:        "התחל צ'אט",
		LeadFormTitle:    "השאר פרטי התקשרות",
		Submit:           "שלח",
		NoThanks:         "לא תודה",
		Offline:          "אנחנו לא זמינים כרגע",
		PoweredBy:        "מופעל על ידי Chatterloop",
		NameRequired:     "אנא הזן את שמך",
		EmailRequired:    "אנא הזן את האימייל שלך",
		PhoneInvalid:     "אנא הזן מספר טלפון תקין",
	},
}

// Resolve returns the locale for a language code. Unknown codes fall back
// to English.
func Resolve(code string) Locale {
	normalized := normalize(code)
	phrases, ok := tables[normalized]
	if !ok {
		normalized = models.DefaultLanguage
		phrases = tables[normalized]
	}
	return Locale{Code: normalized, RTL: rtlLanguages[normalized], Phrases: phrases}
}

// Supported reports whether a phrase table exists for the language code.
func Supported(code string) bool {
	_, ok := tables[normalize(code)]
	return ok
}

// Codes lists every language code a phrase table exists for, sorted.
func Codes() []string {
	out := make([]string, 0, len(tables))
	for code := range tables {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Pick chooses the session language: the requested one if the chatbot
// supports it, otherwise the chatbot's default, otherwise English.
func Pick(requested string, settings *models.WidgetSettings) string {
	if requested != "" && allowedBy(settings, requested) && Supported(requested) {
		return normalize(requested)
	}

	fallback := settings.DefaultLanguageOrFallback()
	if Supported(fallback) {
		return normalize(fallback)
	}
	return models.DefaultLanguage
}

func allowedBy(settings *models.WidgetSettings, code string) bool {
	if settings == nil || !settings.LanguageSwitcher {
		return false
	}
	for _, supported := range settings.SupportedLanguages {
		if strings.EqualFold(supported, code) {
			return true
		}
	}
	return false
}

func normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	// Collapse region subtags ("en-US" -> "en").
	if idx := strings.IndexAny(code, "-_"); idx > 0 {
		code = code[:idx]
	}
	return code
}
