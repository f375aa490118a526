package http

import "golang.org/x/text/language"

// pageStrings 页面与接口消息的本地化文本
type pageStrings struct {
	Lang          string
	Title         string
	Intro         string
	InputsHeader  string
	InputsHint    string
	IronLabel     string
	IronCaption   string
	AirLabel      string
	AirCaption    string
	AmineLabel    string
	AmineCaption  string
	SubmitLabel   string
	ResultHeader  string
	ResultPrefix  string
	ResultNote    string
	Predicting    string
	ModelWarning  string
	PredictFailed string
	BadRequest    string
	AboutTitle    string
	AboutBody     string
}

var supportedLanguages = []language.Tag{
	language.Spanish, // 原始界面语言，作为回退
	language.English,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

var messages = map[language.Tag]pageStrings{
	language.Spanish: {
		Lang:          "es",
		Title:         "Predictor de Concentrado de Sílice (%) en un proceso de Flotación",
		Intro:         "Esta aplicación usa un modelo de machine learning para predecir el Concentrado de Sílice (%) en flotación a partir de tres variables operativas clave.",
		InputsHeader:  "Parámetros de Entrada",
		InputsHint:    "Ajusta los deslizadores para que coincidan con los parámetros operativos del proceso de flotación.",
		IronLabel:     "Concentrado de hierro (%)",
		IronCaption:   "Fracción del mineral recuperada en la espuma después de la separación",
		AirLabel:      "Flujo de aire - Columna de flotación 01",
		AirCaption:    "Cantidad de aire inyectada a través del sistema de dispersión en la columna",
		AmineLabel:    "Flujo de Amina",
		AmineCaption:  "Dosificación de reactivo colector del tipo amina alimentada a la columna",
		SubmitLabel:   "Predecir Concentrado de Sílice (%)",
		ResultHeader:  "Resultado de la Predicción",
		ResultPrefix:  "Concentrado Predicho:",
		ResultNote:    "Este valor representa el porcentaje del concentrado de sílice estimado.",
		Predicting:    "Prediciendo...",
		ModelWarning:  "El modelo no pudo ser cargado. Por favor, verifica la ruta del archivo del modelo.",
		PredictFailed: "Ocurrió un error durante la predicción",
		BadRequest:    "Entrada inválida: se requieren valores numéricos para iron, air y amine",
		AboutTitle:    "Sobre la Aplicación",
		AboutBody:     "El modelo de regresión pre-entrenado recibe los tres parámetros operativos y devuelve el porcentaje estimado del concentrado de sílice como estimación puntual.",
	},
	language.English: {
		Lang:          "en",
		Title:         "Silica Concentrate (%) Predictor for a Flotation Process",
		Intro:         "This application uses a machine learning model to predict the flotation Silica Concentrate (%) from three key operating variables.",
		InputsHeader:  "Input Parameters",
		InputsHint:    "Adjust the sliders to match the operating parameters of the flotation process.",
		IronLabel:     "Iron concentrate (%)",
		IronCaption:   "Fraction of the ore recovered in the froth after separation",
		AirLabel:      "Air flow - Flotation column 01",
		AirCaption:    "Amount of air injected through the dispersion system in the column",
		AmineLabel:    "Amine flow",
		AmineCaption:  "Dosage of amine collector reagent fed to the column",
		SubmitLabel:   "Predict Silica Concentrate (%)",
		ResultHeader:  "Prediction Result",
		ResultPrefix:  "Predicted Concentrate:",
		ResultNote:    "This value represents the estimated silica concentrate percentage.",
		Predicting:    "Predicting...",
		ModelWarning:  "The model could not be loaded. Please check the model file path.",
		PredictFailed: "An error occurred during prediction",
		BadRequest:    "Invalid input: numeric values are required for iron, air and amine",
		AboutTitle:    "About this Application",
		AboutBody:     "The pre-trained regression model receives the three operating parameters and returns the estimated silica concentrate percentage as a point estimate.",
	},
}

// stringsFor 按Accept-Language选择文本，匹配不到时退回默认语言
func stringsFor(acceptLanguage, fallback string) pageStrings {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		tags = []language.Tag{language.Make(fallback)}
	}
	_, index, _ := languageMatcher.Match(tags...)
	if index < 0 || index >= len(supportedLanguages) {
		index = 0
	}
	return messages[supportedLanguages[index]]
}
