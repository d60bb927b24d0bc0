package mime

type MIME = string

const (
	CSS  MIME = "text/css"
	HTML MIME = "text/html"
	GIF  MIME = "image/gif"
	ICO  MIME = "image/x-icon"
	JPEG MIME = "image/jpeg"
	JS   MIME = "text/javascript"
	PNG  MIME = "image/png"
)
