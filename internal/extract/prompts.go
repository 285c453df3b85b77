package extract

// OrderPrompt asks for the order shown in an email screenshot.
const OrderPrompt = `Extract the order details from the email in the screenshot. Provide the output strictly in the following JSON format:
{
  "customerName": "name of the customer",
  "orderedArticles": [
    {
      "articleName": "name of the article",
      "quantity": quantity_as_number,
      "pricePerUnit": price_as_number
    }
    // ... more articles if present
  ]
}`

const elementIDsPrompt = `Based on the following UI automation tree JSON for the 'Mini ERP Mock' application, identify the element IDs for the specified controls. Provide the output strictly in the following JSON format:
{
  "elementIdCustomerName": "ID_for_customer_name_input",
  "elementIdArticleName": "ID_for_article_name_input",
  "elementIdQuantity": "ID_for_quantity_input",
  "elementIdPricePerUnit": "ID_for_price_input",
  "elementIdAddItemButton": "ID_for_add_item_button",
  "elementIdSaveOrderButton": "ID_for_save_order_button"
}

UI Automation Tree JSON:
%s`

const digestPrompt = `These are the latest tweets of some twitter accounts that are typically very up-to-date on AI news. Give me a summary on the concrete topics they write about (3 bullet points, one short sentence, each) and a rating 0-100 if you have the impression that actual very big breaking news has just occurred within the last hour.<tweets>%s</tweets>Answer with a JSON in this form:
{
    "summaryBulletPoints": [
        "bullet point 1",
        "bullet point 2",
        "bullet point 3"
    ],
    "breakingNewsProbabilityInPercent": 50
}`

const askTreePrompt = "%s You can read it from its automation tree: %s"
