package backend

type openChromeRequest struct {
	URL      string `json:"url"`
	Strategy int    `json:"strategy"`
}

type navigateRequest struct {
	URL string `json:"url"`
}

type openApplicationRequest struct {
	AppNameOrPath string `json:"appNameOrPath"`
}

type windowRequest struct {
	WindowID string `json:"windowId"`
}

type clickRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type describeRequest struct {
	Description string `json:"elementDescription"`
}

type scrollRequest struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Clicks int `json:"clicks"`
}

type typeRequest struct {
	Text string `json:"text"`
}

type pressRequest struct {
	Keys string `json:"keys"`
}

type setValueRequest struct {
	ElementID string `json:"elementId"`
	Value     string `json:"value"`
}

type elementRequest struct {
	ElementID string `json:"elementId"`
}
