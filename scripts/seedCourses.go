package main

import (
	"encoding/csv"
	"lms/config"
	"lms/database"
	"lms/models"
	"log"
	"os"
	"strconv"
	"strings"
)

// Seeds the course catalog from a CSV export. Expected headers:
// instructorId, instructorName, title, category, level, language, subtitle,
// description, pricing, published
func main() {
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open("courses.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		if i%100 == 0 {
			log.Printf("Processing row %d...", i+1)
		}

		course := models.Course{
			InstructorID:   uint(parseInt(getField(row, headerIndex, "instructorId"))),
			InstructorName: getField(row, headerIndex, "instructorName"),
			Title:          getField(row, headerIndex, "title"),
			Category:       getField(row, headerIndex, "category"),
			Level:          getField(row, headerIndex, "level"),
			Language:       getField(row, headerIndex, "language"),
			Subtitle:       getField(row, headerIndex, "subtitle"),
			Description:    getField(row, headerIndex, "description"),
			Pricing:        parseFloat(getField(row, headerIndex, "pricing")),
			IsPublished:    parseBool(getField(row, headerIndex, "published")),
		}

		if course.Title == "" || course.InstructorID == 0 {
			skipped++
			continue
		}

		var existing models.Course
		result := database.Database.Db.
			Where("instructor_id = ? AND title = ?", course.InstructorID, course.Title).
			First(&existing)

		if result.Error != nil {
			if err := database.Database.Db.Create(&course).Error; err != nil {
				log.Printf("Error inserting course %q: %v", course.Title, err)
				continue
			}
			inserted++
		} else {
			existing.Category = course.Category
			existing.Level = course.Level
			existing.Language = course.Language
			existing.Subtitle = course.Subtitle
			existing.Description = course.Description
			existing.Pricing = course.Pricing
			existing.IsPublished = course.IsPublished
			if err := database.Database.Db.Save(&existing).Error; err != nil {
				log.Printf("Error updating course %q: %v", course.Title, err)
				continue
			}
			updated++
		}
	}

	log.Printf("Import complete: %d inserted, %d updated, %d skipped", inserted, updated, skipped)
}

func getField(row []string, headerIndex map[string]int, name string) string {
	idx, ok := headerIndex[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseBool(s string) bool {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return v
}
