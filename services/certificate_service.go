package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/dmutua84/learnhub/configs"
	"github.com/dmutua84/learnhub/database"
	"github.com/dmutua84/learnhub/models"
	"github.com/dmutua84/learnhub/websocket"
	"github.com/google/uuid"
)

// CheckAndGenerateCertificate issues a certificate for a passed quiz, once.
// Runs off the request path; every failure is logged and swallowed so the
// student's submission result is never blocked on PDF rendering or uploads.
func CheckAndGenerateCertificate(user models.User, quiz models.Quiz, score int) {
	courseTitle := fmt.Sprintf("%s — %s", quiz.Course.Title, quiz.Title)

	var existingCert models.Certificate
	if err := database.DB.Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).First(&existingCert).Error; err == nil {
		return
	}

	htmlData, err := generateCertificateHTML(user.Name, courseTitle, score)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate PDF: %v", err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, user.ID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload certificate to Cloudinary: %v", err)
		return
	}

	newCertificate := models.Certificate{
		UserID:         user.ID,
		QuizID:         quiz.ID,
		CourseTitle:    courseTitle,
		Score:          score,
		CertificateURL: uploadURL,
		IssuedAt:       time.Now(),
	}

	if err := database.DB.Create(&newCertificate).Error; err != nil {
		log.Printf("🔥 Failed to create certificate record for user %s: %v", user.ID, err)
		return
	}

	log.Printf("✅ Generated and uploaded certificate '%s' for user %s.", courseTitle, user.ID)
	websocket.NotifyUser(user.ID, websocket.Event{Type: "certificate_ready", Payload: newCertificate})
}

func generateCertificateHTML(studentName, courseTitle string, score int) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName    string
		CourseTitle    string
		Score          int
		CompletionDate string
	}{
		StudentName:    studentName,
		CourseTitle:    courseTitle,
		Score:          score,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, userID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s_%s", userID, uuid.New().String()),
		Folder:       "learnhub_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
