package prompt

// languages holds the per-language prompting configuration. The English
// 1-shot examples are reused for every language.
var languages = map[string]Language{
	"English": {
		Name:         "English",
		Code:         "En",
		SystemPrompt: "You are an AI assistant that analyzes images and text. Provide your analysis with detailed step-by-step reasoning (rationales).",
		ImageOnlyTemplate: `Below is a 1-shot example (including the expected analysis and detailed reasoning) that demonstrates how to solve this task:

Example Question: {example_question}
Example Response:
{example_response}

Now, please perform the following task for the given image:
{task_description}`,
		ImageTextTemplate: `Below is a 1-shot example (including the expected analysis and detailed reasoning) that demonstrates how to solve this task:

Example Question: {example_question}
Example Response:
{example_response}

Text associated with the image:
{text_content}

Task:
{task_description}`,
		Tasks: map[Task]string{
			1: "Analyze this image and list all objects present. Categorize each object into groups such as furniture, electronic devices, clothing, etc. Be thorough and specific in your identification.",
			2: "Describe the overall scene in this image. What is the setting, and what activities or events are taking place? Provide a comprehensive overview of the environment and any actions occurring.",
			3: "Identify any interactions or relationships between objects or entities in this image. How are they related or interacting with each other? Explain any spatial, functional, or social connections you observe.",
			4: "Divide this image into different semantic regions. Label each region (e.g., sky, buildings, people, street) and briefly describe its contents. Provide a clear breakdown of the image's composition.",
			5: "Provide a detailed, natural language description of what is happening in this image. Narrate the scene as if you were explaining it to someone who cannot see it, including all relevant details and actions.",
			6: "Extract and list the specific parts of the text that closely match or directly reference entities, objects, or scenes depicted in the image. Be precise in identifying these connections and explain the visual evidence that supports each textual reference.",
			7: "Identify which parts of the text are not relevant to or not represented in the image. Explain why these elements are unrelated by describing what is missing in the image that would be needed to illustrate these textual elements.",
			8: "What places are mentioned in the text or shown in the image? For each place identified, indicate whether it appears in the text, the image, or both. If any of these places are famous or well-known locations, explain why they are significant.",
		},
	},
	"Japanese": {
		Name:         "Japanese",
		Code:         "Jp",
		SystemPrompt: "あなたは画像とテキストを分析し、日本語で回答する AI アシスタントです。ステップ・バイ・ステップの詳細な根拠も提供してください。",
		ImageOnlyTemplate: `以下は、1-shot の例（期待される分析と詳細な根拠を含む）です。この例を参考にして、与えられた画像に対して次のタスクを実行してください：

例の質問: {example_question}
例の回答:
{example_response}

タスク:
{task_description}`,
		ImageTextTemplate: `以下は、画像とテキストの関係を分析するための 1-shot の例（期待される分析と詳細な根拠を含む）です。この例を参考にして、与えられた画像および関連テキストに基づいてタスクを実行してください：

例の質問: {example_question}
例の回答:
{example_response}

画像に関連するテキスト:
{text_content}

タスク:
{task_description}`,
		Tasks: map[Task]string{
			1: "この画像に存在するすべてのオブジェクトを分析し、家具、電子機器、衣類などのグループに分類してください。徹底的かつ具体的に識別してください。",
			2: "この画像の全体的な場面を説明してください。どのような環境で、どのような活動や出来事が起こっているかを包括的に記述してください。",
			3: "この画像内のオブジェクトや実体間の相互作用・関係を特定し、空間的、機能的、または社会的な接点を詳述してください。",
			4: "この画像を異なる意味領域に分割し、各領域（例：空、建物、人物、通り）の内容を簡潔に説明してください。",
			5: "この画像で何が起こっているかを、見ることのできない人に説明するかのように詳細に記述してください。",
			6: "テキストのうち、画像内に描かれているエンティティ、オブジェクト、またはシーンと密接に一致する部分を抽出し、視覚的証拠とともに説明してください。",
			7: "テキスト中の、画像に対応していない部分を特定し、それらがなぜ関連性がないかを説明してください。",
			8: "画像またはテキスト内で言及されている場所を特定し、それぞれが画像、テキスト、またはその両方に現れているかを示してください。有名な場所については、その重要性も説明してください。",
		},
	},
	"Swahili": {
		Name:         "Swahili",
		Code:         "Sw",
		SystemPrompt: "Wewe ni AI msaidizi unayechambua picha na maandishi na kutoa majibu kwa lugha ya Kiswahili. Toa uchambuzi wako kwa hatua kwa hatua ukiongoza kwa sababu (rationales).",
		ImageOnlyTemplate: `Hapa chini kuna mfano wa 1-shot (unaojumuisha uchambuzi na sababu za kina) wa jinsi ya kutekeleza kazi hii.
Mfano Swali: {example_question}
Mfano Jibu:
{example_response}

Sasa, tafadhali fanya kazi ifuatayo kwa picha iliyotolewa:
{task_description}`,
		ImageTextTemplate: `Hapa chini kuna mfano wa 1-shot (unaojumuisha uchambuzi na sababu za kina) wa jinsi ya kutekeleza kazi hii.
Mfano Swali: {example_question}
Mfano Jibu:
{example_response}

Maandishi yanayohusiana na picha:
{text_content}

Kazi:
{task_description}`,
		Tasks: map[Task]string{
			1: "Changanua picha hii na uorodheshe vitu vyote vilivyomo, ukae makini na wazi unapoweka kwenye makundi kama samani, vifaa vya elektroniki, mavazi, n.k.",
			2: "Elezea mandhari nzima katika picha hii, ukielezea mazingira na shughuli au matukio yanayofanyika.",
			3: "Tambua na elezea mwingiliano au uhusiano kati ya vitu au viumbe katika picha hii, ukizingatia uhusiano wa sehemu, shughuli, au kijamii.",
			4: "Gawanya picha hii katika maeneo tofauti ya maana, ukielezea yaliyomo katika kila eneo kwa ufupi na kwa uwazi.",
			5: "Toa maelezo ya kina ya kinachoendelea katika picha hii kama unavyoweza kuelezea kwa mtu asiyeiona.",
			6: "Toa orodha ya sehemu katika maandishi zinazofanana au zinazorejelea moja kwa moja vitu au matukio yaliyopo katika picha na elezea ushahidi wa kuona.",
			7: "Tambua ni sehemu gani za maandishi ambazo hazitingani na picha na elezea kwa nini hazilingani, ukielezea kile ambacho kinasahaulika katika picha.",
			8: "Elezea maeneo yaliyotajwa katika picha au maandishi, ukionyesha kama yanapatikana kwenye picha, maandishi, au vyote viwili, na kama ni muhimu elezea umuhimu wake.",
		},
	},
	"Urdu": {
		Name:         "Urdu",
		Code:         "Ur",
		SystemPrompt: "آپ ایک ایسے AI اسسٹنٹ ہیں جو تصاویر اور متن کا تجزیہ کرتے ہیں اور اردو میں جوابات فراہم کرتے ہیں۔ براہِ کرم اپنے تجزیے میں مرحلہ وار تفصیلی بنیادیں (rationales) شامل کریں۔",
		ImageOnlyTemplate: `نیچے ایک 1-shot مثال (جس میں متوقع تجزیہ اور تفصیلی بنیادیں شامل ہیں) دی گئی ہے۔ اس مثال کو مدِنظر رکھتے ہوئے، براہِ کرم دی گئی تصویر کے لیے درج ذیل ٹاسک انجام دیں:

مثال کا سوال: {example_question}
مثال کا جواب:
{example_response}

ٹاسک:
{task_description}`,
		ImageTextTemplate: `نیچے ایک 1-shot مثال (جس میں متوقع تجزیہ اور تفصیلی بنیادیں شامل ہیں) دی گئی ہے۔ اس مثال کو مدِنظر رکھتے ہوئے، براہِ کرم تصویر اور متعلقہ متن کے مطابق ٹاسک انجام دیں:

مثال کا سوال: {example_question}
مثال کا جواب:
{example_response}

تصویر سے متعلق متن:
{text_content}

ٹاسک:
{task_description}`,
		Tasks: map[Task]string{
			1: "اس تصویر کا تجزیہ کریں اور موجود تمام اشیاء کو درجہ بندی کریں (مثلاً فرنیچر، الیکٹرانک آلات، کپڑے وغیرہ)۔",
			2: "تصویر میں مجموعی منظر کی وضاحت کریں کہ ماحول کیسا ہے اور کون سی سرگرمیاں جاری ہیں۔",
			3: "تصویر میں اشیاء یا افراد کے درمیان تعامل اور تعلقات کی نشاندہی کریں اور تفصیل سے بیان کریں۔",
			4: "تصویر کو مختلف معنی خیز علاقوں میں تقسیم کریں اور ہر علاقے کی مختصر وضاحت فراہم کریں۔",
			5: "تصویر میں کیا ہو رہا ہے اس کا تفصیلی بیانیہ پیش کریں جیسے کہ آپ کسی کو سنا رہے ہوں جو تصویر نہیں دیکھ سکتا۔",
			6: "متن کے ان حصوں کی نشاندہی کریں جو تصویر میں دکھائی دینے والے مناظر یا اشیاء کے ساتھ میل کھاتے ہوں اور انہیں واضح کریں۔",
			7: "متن کے ان حصوں کی نشاندہی کریں جو تصویر سے مطابقت نہیں رکھتے اور بتائیں کہ تصویر میں اُن کی عدم موجودگی کی وجہ کیا ہے۔",
			8: "متن یا تصویر میں ذکر کیے گئے مقامات کی شناخت کریں اور ظاہر کریں کہ وہ کس صورت میں موجود ہیں (متن، تصویر یا دونوں میں)؛ اگر کوئی مقام مشہور ہے تو اس کی اہمیت بیان کریں۔",
		},
	},
}
