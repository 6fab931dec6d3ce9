package mediaController

import (
	"lms/middleware"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Upload forwards a single multipart file to the media host and returns its
// external reference; host failures surface as 502, never retried here
func Upload(c *fiber.Ctx) error {
	if utils.Store == nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Media store is not configured!", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file provided!", nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded file!", nil)
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := utils.Store.Upload(c.Context(), fileHeader.Filename, contentType, src, fileHeader.Size)
	if err != nil {
		log.Printf("Media upload error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Media host rejected the upload: "+err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "File uploaded successfully!", result)
}

// BulkUpload uploads every file in the multipart form; one bad file fails the
// whole batch so the client never gets a partial curriculum
func BulkUpload(c *fiber.Ctx) error {
	if utils.Store == nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Media store is not configured!", nil)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid multipart form!", nil)
	}

	files := form.File["files"]
	if len(files) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No files provided!", nil)
	}

	results := make([]*utils.UploadResult, 0, len(files))
	for _, fileHeader := range files {
		src, err := fileHeader.Open()
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded file!", nil)
		}

		contentType := fileHeader.Header.Get("Content-Type")
		result, err := utils.Store.Upload(c.Context(), fileHeader.Filename, contentType, src, fileHeader.Size)
		src.Close()
		if err != nil {
			log.Printf("Media bulk upload error: %v", err)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Media host rejected the upload: "+err.Error(), nil)
		}

		results = append(results, result)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Files uploaded successfully!", results)
}

// Delete removes the external media object identified by its public id
func Delete(c *fiber.Ctx) error {
	if utils.Store == nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Media store is not configured!", nil)
	}

	publicID := c.Params("id")
	if publicID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing media id!", nil)
	}

	if err := utils.Store.Delete(c.Context(), publicID); err != nil {
		log.Printf("Media delete error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Media host failed to delete the object: "+err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Media deleted successfully!", nil)
}
