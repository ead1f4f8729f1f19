package handlers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/apis/dtos"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/services"
)

type ImageHandler struct {
	imageService services.ImageService
}

func NewImageHandler(imageService services.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// ProcessImage receives a formula image from the frontend, forwards it to
// the model API and returns the transcribed LaTeX.
func (h *ImageHandler) ProcessImage(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		c.JSON(http.StatusBadRequest, dtos.ErrorResponse{Error: "Invalid Content-Type. Expected multipart/form-data."})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, dtos.ErrorResponse{Error: "No image file provided."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dtos.ErrorResponse{Error: "No image file provided."})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error reading uploaded image: %v", err)
		c.JSON(http.StatusInternalServerError, dtos.ErrorResponse{Error: "Failed to process image."})
		return
	}

	user := currentUser(c)
	response, status, err := h.imageService.ProcessImage(c.Request.Context(), user, image)
	if err != nil {
		c.JSON(int(status), dtos.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}
