package scraper

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/fighter"
)

// Markup anchors on the source site's pages. These are parsing details of
// the upstream collaborator, kept in one place.
const (
	nameSelector      = "span.b-content__title-highlight"
	recordSelector    = "span.b-content__title-record"
	detailSelector    = "li.b-list__box-list-item.b-list__box-list-item_type_block"
	fightDateSelector = "p.b-fight-details__table-text"
	fightLinkSelector = "a.b-link.b-link_style_black"
	profilePathToken  = "fighter-details"
)

// parseDoc builds a goquery document from a fetched page body.
func parseDoc(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

// ExtractProfileLinks returns every hyperlink target on an index page whose
// path matches the fighter profile pattern.
func ExtractProfileLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if ok && strings.Contains(href, profilePathToken) {
			links = append(links, href)
		}
	})
	return links
}

// ExtractName pulls the fighter name from a profile page, or "Unknown" when
// the title span is missing.
func ExtractName(doc *goquery.Document) string {
	name := strings.TrimSpace(doc.Find(nameSelector).First().Text())
	if name == "" {
		return "Unknown"
	}
	return name
}

// ExtractStats pulls every raw stat field from a profile page: the labeled
// detail list, the fight record, the most recent past fight date, and the
// count of UFC-branded fight links. Missing fields are simply absent from
// the returned map; extraction never fails on a sparse page.
func ExtractStats(doc *goquery.Document, now time.Time) map[string]string {
	fields := map[string]string{}

	doc.Find(detailSelector).Each(func(_ int, sel *goquery.Selection) {
		labelSel := sel.Find("i").First()
		label := strings.TrimSuffix(strings.TrimSpace(labelSel.Text()), ":")
		if label == "" {
			return
		}
		labelSel.Remove()
		fields[label] = strings.TrimSpace(sel.Text())
	})

	if record := strings.TrimSpace(doc.Find(recordSelector).First().Text()); record != "" {
		fields["Record"] = strings.TrimSpace(strings.TrimPrefix(record, "Record:"))
	}

	fields["MostRecentFight"] = mostRecentFight(doc, now)
	fields["fightswithinufc"] = ufcFightCount(doc)

	return fields
}

// mostRecentFight scans the fight-history table for the latest date not in
// the future. Cells that do not look like dates (fourth character is not a
// period) are skipped before any parse attempt. When no past date qualifies
// the sentinel value is returned.
func mostRecentFight(doc *goquery.Document, now time.Time) string {
	var mostRecent time.Time
	doc.Find(fightDateSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len(text) < 10 || text[3] != '.' {
			return
		}
		parsed, err := time.Parse("Jan 2, 2006", strings.ReplaceAll(text, ".", ""))
		if err != nil {
			return
		}
		if parsed.After(now) {
			return
		}
		if parsed.After(mostRecent) {
			mostRecent = parsed
		}
	})
	if mostRecent.IsZero() {
		return fighter.NoFightSentinel
	}
	return mostRecent.Format("Jan 02, 2006")
}

// ufcFightCount counts fight-history links whose visible text mentions the
// UFC brand, a proxy for fights held inside the organization rather than
// prior promotions.
func ufcFightCount(doc *goquery.Document) string {
	count := 0
	doc.Find(fightLinkSelector).Each(func(_ int, sel *goquery.Selection) {
		if strings.Contains(sel.Text(), "UFC") {
			count++
		}
	})
	return strconv.Itoa(count)
}
