// Package printing renders invoices as HTML through html/template and converts the
// HTML to PDF with headless Chrome (chromedp).
package printing
