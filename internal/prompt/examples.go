package prompt

// Examples holds the shared English 1-shot demonstrations, keyed by task.
var Examples = map[Task]Example{
	1: {
		Question: "Analyze this image and list all objects present. Categorize each object into groups such as furniture, electronic devices, clothing, etc. Be thorough and specific in your identification.",
		Response: `**Image Analysis**

**Objects Present:**

1. **Furniture:**
   - Airport seating/benches

2. **Electronic Devices:**
   - Cameras
   - Smartphones

3. **Clothing:**
   - Jackets
   - Hats
   - Glasses
   - Scarves

4. **Signs/Posters:**
   - Various protest signs and posters
   - American flag

5. **Miscellaneous:**
   - Backpacks
   - Luggage
   - Stanchions/barriers

This image appears to depict a gathering or protest in an airport setting.`,
	},
	2: {
		Question: "Describe the overall scene in this image. What is the setting, and what activities or events are taking place? Provide a comprehensive overview of the environment and any actions occurring.",
		Response: `**Image Analysis:**

The scene takes place in an airport terminal. The environment is bustling with a large group of people gathered together, indicating a protest or demonstration. Many individuals are seated on the floor, while others stand, holding signs and banners. The signs display various messages, suggesting that the gathering is organized around a specific cause or issue. One person is holding an American flag, which may indicate a connection to national or political themes. The atmosphere appears to be peaceful, with people engaged in the protest, some taking photos or videos. The setting is indoors, with typical airport features like seating areas and signage visible in the background.`,
	},
	3: {
		Question: "Identify any interactions or relationships between objects or entities in this image. How are they related or interacting with each other? Explain any spatial, functional, or social connections you observe.",
		Response: `**Analysis:**

The image depicts a large group of people gathered in what appears to be an airport terminal. The interactions and relationships between the objects and entities in the image can be described as follows:

1. **Spatial Arrangement:**
   - The people are closely packed together, indicating a collective gathering or event. Many are seated on the floor, while others are standing, suggesting limited space or a long-duration event.
   - Signs and banners are held by several individuals, indicating a protest or demonstration.

2. **Functional Connections:**
   - The presence of signs and banners suggests that the group is participating in a protest or rally. The content of the signs, though not fully legible, appears to convey messages or slogans typical of such events.
   - Some individuals are holding cameras or phones, likely documenting the event, which is common in public demonstrations.

3. **Social Interactions:**
   - The group appears to be unified in purpose, as indicated by their collective focus and the presence of similar signs. This suggests a shared cause or message.
   - The presence of an American flag among the signs may indicate a connection to national issues or policies.

Overall, the image captures a social and political interaction where individuals are gathered to express a collective viewpoint or protest, likely related to a specific cause or event.`,
	},
	4: {
		Question: "Divide this image into different semantic regions. Label each region (e.g., sky, buildings, people, street) and briefly describe its contents. Provide a clear breakdown of the image's composition.",
		Response: `**Image Analysis: Semantic Regions**

1. **Foreground (People and Signs)**
   - **Contents**: A group of people sitting and standing, holding signs. The signs have various messages, indicating a protest or demonstration. Some individuals are holding up phones, possibly recording or taking pictures.

2. **Middle Ground (Crowd and Flags)**
   - **Contents**: A larger crowd of people, some holding signs and an American flag. This area shows more participants in the demonstration, with a mix of standing and seated individuals.

3. **Background (Airport Interior)**
   - **Contents**: The interior of an airport terminal, with visible signage and architectural elements like pillars and ceiling lights. There are additional people in the background, contributing to the sense of a busy, crowded space.

4. **Left Side (Signage)**
   - **Contents**: A large sign with text related to TSA Pre✓, indicating the location within an airport. This provides context for the setting of the image.

5. **Right Side (Seating Area)**
   - **Contents**: Rows of airport seating, some occupied by people. This area is part of the terminal's waiting area, reinforcing the airport environment.

Overall, the image depicts a protest or demonstration taking place inside an airport terminal, with various groups of people actively participating and observing.`,
	},
	5: {
		Question: "Provide a detailed, natural language description of what is happening in this image. Narrate the scene as if you were explaining it to someone who cannot see it, including all relevant details and actions.",
		Response: `**Image Analysis:**

The image depicts a large group of people gathered inside what appears to be an airport terminal. The scene is lively and crowded, with individuals engaged in a protest or demonstration. Many people are sitting on the floor, while others stand around them, holding signs and banners. The signs display various messages, some of which are partially visible, indicating themes of protest or advocacy. One sign prominently features the word "Ban," suggesting opposition to a specific policy or action.

In the background, a person is holding an American flag, adding a patriotic element to the gathering. The crowd is diverse, with people of different ages and appearances, indicating a broad participation in the event. Some individuals are taking photos or videos, capturing the moment on their devices.

The setting is a busy terminal area, with signs indicating directions and services, such as TSA PreCheck. The atmosphere is one of organized activism, with participants seemingly united in their cause. The overall mood is serious yet peaceful, as people express their views and support for the issue at hand.`,
	},
	6: {
		Question: "Extract and list the specific parts of the text that closely match or directly reference entities, objects, or scenes depicted in the image. Be precise in identifying these connections and explain the visual evidence that supports each textual reference.",
		Response: `The image depicts a large group of people gathered in what appears to be an airport terminal. Many individuals are holding signs, and there is a visible presence of protest activity. This scene aligns with several elements from the text:

1. **Location - Airport**: The text mentions John F. Kennedy International Airport in New York, where individuals were detained. The image shows a crowd in an airport setting, supporting this reference.

2. **Protest Activity:** The text describes "upheaval" and "widespread confusion" at airports due to the executive order. The presence of protest signs and a large gathering of people in the image visually supports this description.

3. **Signs and Messages:** Although the specific text on the signs in the image is not fully legible, the presence of signs suggests protest or demonstration, which is consistent with the text's mention of public reaction to the executive order.

4. **Crowd and Atmosphere:** The image shows a diverse group of people, which aligns with the text's implication of a broad public response to the travel ban.

These visual elements in the image directly support the textual references to protests and detentions at airports following the executive order.`,
	},
	7: {
		Question: "Identify which parts of the text are not relevant to or not represented in the image. Explain why these elements are unrelated by describing what is missing in the image that would be needed to illustrate these textual elements.",
		Response: `The image depicts a protest scene at an airport, with people holding signs and an American flag, which aligns with the text's mention of protests and confusion at airports due to the travel ban. However, several elements from the text are not represented in the image:

1. **Judicial Rulings:** The text discusses emergency rulings by judges in Brooklyn and Virginia halting deportations. The image does not show any courtrooms, judges, or legal proceedings.

2. **Specific Individuals:** The text mentions Hameed Khalid Darweesh, an Iraqi translator, and other detained individuals. The image does not identify or depict any specific individuals mentioned in the text.

3. **Government Statements:** The text includes statements from Donald Trump and descriptions from media outlets like The New York Times and The Verge. The image does not show any government officials or media coverage.

4. **Detention and Boarding Prevention:** The text details the detention of individuals at JFK Airport and others being prevented from boarding planes. The image does not show any detention areas or boarding gates.

5. **Legal Documents:** The text references legal documents like visas and green cards. The image does not depict any such documents.

Overall, while the image captures the protest aspect related to the travel ban, it lacks representation of the legal, governmental, and individual-specific details provided in the text.`,
	},
	8: {
		Question: "What places are mentioned in the text or shown in the image? For each place identified, indicate whether it appears in the text, the image, or both. If any of these places are famous or well-known locations, explain why they are significant.",
		Response: `Based on the text and the image, the following places are mentioned or shown:

1. **Brooklyn, New York**
   - **Text:** Mentioned as the location where a U.S. federal judge issued an emergency ruling.
   - **Significance:** Brooklyn is a well-known borough of New York City, significant for its cultural diversity and historical landmarks.

2. **John F. Kennedy International Airport (JFK)**
   - **Text:** Mentioned as the location where individuals were detained.
   - **Image:** The image shows a scene likely at an airport, with people holding signs, which could be related to protests at JFK.
   - **Significance:** JFK is one of the major airports in the U.S., located in New York City, and is a significant hub for international travel.

3. **Virginia**
   - **Text:** Mentioned as the location where another judge issued a similar ruling.
   - **Significance:** Virginia is a U.S. state with historical importance, being one of the original thirteen colonies.

4. **New York City**
   - **Text:** Mentioned in relation to JFK Airport.
   - **Significance:** New York City is a major global city known for its influence in finance, culture, and politics.

5. **United States**
   - **Text:** Mentioned multiple times in relation to the executive order and legal actions.
   - **Significance:** The U.S. is a significant country globally, often involved in international political and legal matters.

The image likely depicts a protest or gathering at an airport, which aligns with the text's mention of protests and detentions at JFK Airport in New York City. The presence of signs and a crowd suggests a public demonstration, possibly in response to the executive order discussed in the text.`,
	},
}
