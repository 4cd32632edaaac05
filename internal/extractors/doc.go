// Package extractors groups the text extraction backends used by the
// text source: pdf for PDF files, image for raster scans, and ocr for the
// tesseract engine both of them lean on.
package extractors
