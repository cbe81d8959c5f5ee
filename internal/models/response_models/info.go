package response_models

type InfoResponse struct {
	Topic string `json:"topic"`
	Title string `json:"title"`
	Body  string `json:"body"`
}
