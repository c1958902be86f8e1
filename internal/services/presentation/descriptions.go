package presentation

// Markdown bodies keyed by display code.
var descriptionText = map[string]struct {
	title string
	body  string
}{
	"CR": {"Current Ratio (CR)", `The **current ratio** measures whether a company can pay obligations due within
one year using assets that convert to cash within the same period.

    Current Ratio = Current Assets / Current Liabilities

| Value | Reading |
|---|---|
| 2 or more | comfortable liquidity |
| 1 to 2 | adequate, worth watching |
| below 1 | short-term liabilities exceed short-term assets |

A very high ratio can also mean cash or inventory is sitting idle.`},
	"QR": {"Quick Ratio (QR)", `The **quick ratio** (acid test) is a stricter liquidity measure than the current
ratio: it leaves inventory out because inventory may not sell quickly.

    Quick Ratio = (Cash + Marketable Securities + Receivables) / Current Liabilities

A value of **1 or more** means the company can cover current liabilities without
selling inventory. Below 1 it depends on future sales or financing.`},
	"ROE": {"Return on Equity (ROE)", `**Return on equity** shows how much profit a company generates with the money
shareholders have invested.

    ROE = Net Income / Shareholders' Equity

Compare ROE between companies in the same industry. A high ROE driven by heavy
borrowing shrinks equity and can overstate performance.`},
	"ROA": {"Return on Assets (ROA)", `**Return on assets** indicates how efficiently management uses the balance sheet
to produce earnings.

    ROA = Net Income / Total Assets

Asset-heavy industries such as utilities report lower ROA than software or
services companies, so compare within a sector.`},
	"RT": {"Receivables Turnover (RT)", `The **receivables turnover** ratio counts how many times per period a company
collects its average accounts receivable.

    Receivables Turnover = Net Credit Sales / Average Accounts Receivable

A higher value means customers pay faster. A falling value can point to looser
credit terms or collection problems.`},
	"DE": {"Debt to Equity Ratio (DE)", `The **debt to equity ratio** compares what a company owes with what its owners
have invested.

    D/E = Total Liabilities / Shareholders' Equity

| Value | Reading |
|---|---|
| below 1 | financed mostly by equity |
| exactly 1 | equal parts debt and equity |
| above 1 | financed mostly by debt |`},
	"PE": {"Price to Earnings Ratio (PE)", `The **price to earnings ratio** tells how much investors pay for one unit of
earnings.

    P/E = Share Price / Earnings per Share

| Value | Reading |
|---|---|
| below 15 | inexpensive relative to earnings |
| 15 to 20 | around the market average |
| 20 or more | priced for growth, or expensive |

Negative earnings make the ratio meaningless.`},
	"PSR": {"Price to Sales Ratio (PSR)", `The **price to sales ratio** values a company against its revenue, which is
useful when earnings are negative or volatile.

    P/S = Market Capitalization / Total Revenue

| Value | Reading |
|---|---|
| below 2 | attractive |
| 2 to 5 | fair |
| 5 or more | expensive |`},
	"PBR": {"Price to Book Ratio (PBR)", `The **price to book ratio** compares the market value of a company with the
accounting value of its net assets.

    P/B = Share Price / Book Value per Share

A value **below 1** can signal an undervalued company, or a market that doubts
the book value of its assets.`},
}
