package service

// AnalysisPrompt is sent after the screenshot. It pins the JSON schema the
// normalizer expects and asks for bare JSON.
const AnalysisPrompt = `You are analyzing a browser or desktop screenshot.

Respond ONLY with a valid JSON object in this exact format (no markdown, no code fences):
{
  "page_type": "search_results | article | form | dashboard | homepage | other",
  "page_title": "visible heading or browser tab title",
  "page_summary": "2-3 sentence summary of what is visible",
  "current_url_visible": "URL shown in address bar, or null if not visible",
  "main_content": "the primary text content visible on screen",
  "ui_elements": [
    {"type": "button|link|input|text|image|nav|menu", "label": "visible label", "location": "top|center|bottom|left|right"}
  ],
  "suggested_actions": [
    "Specific action the user could take based on what is visible"
  ]
}`
